package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Canned plot replies.
const (
	plotConfirmation = "Voici le graphique de la fonction demandée :"
	plotApologyFmt   = "Désolé, je n'ai pas pu tracer la fonction « %s ». Vérifie l'expression et réessaie."
)

// Composer answers one student message: either a locally computed plot or
// the hosted model's text. It holds no per-conversation state.
type Composer struct {
	model    ChatModel
	config   ConfigProvider
	detector IntentDetector
	sampler  *Sampler
	modelID  string
	logger   *zap.Logger
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithPlotting enables the plot short-circuit. Without it every message goes
// to the model.
func WithPlotting(detector IntentDetector, sampler *Sampler) ComposerOption {
	return func(c *Composer) {
		c.detector = detector
		c.sampler = sampler
	}
}

// WithModelID sets the model ID passed to the ChatModel. Empty string means
// the model's default.
func WithModelID(id string) ComposerOption {
	return func(c *Composer) { c.modelID = id }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ComposerOption {
	return func(c *Composer) { c.logger = l }
}

// NewComposer creates a Composer for the given model and configuration.
func NewComposer(model ChatModel, config ConfigProvider, opts ...ComposerOption) *Composer {
	c := &Composer{model: model, config: config, logger: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Respond answers req. Image requests always go to the model. Credential
// and overload failures are translated to ErrInvalidConfig and
// ErrServiceBusy; other errors are returned unchanged.
func (c *Composer) Respond(ctx context.Context, req Request) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	for _, t := range req.History {
		if err := ValidateTurn(t); err != nil {
			return Reply{}, err
		}
	}

	if !req.HasImage() && c.detector != nil && c.sampler != nil {
		if expr, ok := c.detector.Detect(req.Message); ok {
			return c.plot(expr), nil
		}
	}

	text, err := c.ask(ctx, req)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Response: text}, nil
}

func (c *Composer) plot(expr string) Reply {
	result, ok := c.sampler.Sample(expr)
	if !ok {
		c.logger.Info("plot failed", zap.String("expression", expr))
		return Reply{Response: fmt.Sprintf(plotApologyFmt, expr)}
	}
	c.logger.Debug("plot produced",
		zap.String("expression", expr),
		zap.Int("points", len(result.Points)),
	)
	return Reply{Response: plotConfirmation, Plot: result}
}

// ask forwards the conversation to the hosted model.
func (c *Composer) ask(ctx context.Context, req Request) (string, error) {
	key, err := c.config.APIKey(ctx)
	if err != nil {
		c.logger.Error("model API key unavailable", zap.Error(err))
		return "", ErrInvalidConfig
	}
	instruction, err := c.config.SystemInstruction(ctx)
	if err != nil {
		return "", err
	}

	c.logger.Debug("forwarding to model",
		zap.Int("history", len(req.History)),
		zap.Bool("image", req.HasImage()),
	)
	text, err := c.model.Chat(ctx, ChatRequest{
		APIKey:            key,
		Model:             c.modelID,
		SystemInstruction: instruction,
		History:           req.History,
		Message:           req.Message,
		Image:             req.Image,
	})
	if err != nil {
		c.logger.Error("model call failed", zap.Error(err))
		return "", ClassifyModelError(err)
	}
	return text, nil
}

// ClassifyModelError maps a model failure to a user-facing error by
// matching its text. Unrecognized errors are returned unchanged.
func ClassifyModelError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return ErrInvalidConfig
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"), strings.Contains(msg, "API_KEY_INVALID"):
		return ErrInvalidConfig
	case strings.Contains(msg, "503"), strings.Contains(strings.ToLower(msg), "overloaded"):
		return ErrServiceBusy
	default:
		return err
	}
}
