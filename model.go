package tutor

import "context"

// ChatModel is a hosted generative model answering one message given the
// prior conversation.
type ChatModel interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// ChatRequest carries everything a ChatModel needs for one call. The API key
// is resolved per call, so implementations must not cache it.
type ChatRequest struct {
	APIKey            string
	Model             string // empty = implementation default
	SystemInstruction string
	History           []Turn
	Message           string
	Image             string // data URI; empty when absent
}
