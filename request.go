package tutor

import "context"

// Request is a single incoming student message.
type Request struct {
	Message string
	Image   string // data URI; empty when no attachment
	History []Turn
}

// HasImage reports whether the request carries an image attachment.
func (r Request) HasImage() bool {
	return r.Image != ""
}

// Reply is the answer to a Request. Plot is nil unless a plot was produced.
type Reply struct {
	Response string
	Plot     *PlotResult
}

// Responder answers student requests. *Composer implements it.
type Responder interface {
	Respond(ctx context.Context, req Request) (Reply, error)
}

// Interface compliance check.
var _ Responder = (*Composer)(nil)
