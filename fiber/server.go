// Package fiber serves the tutor HTTP API with Fiber.
//
// The server is stateless: every request carries its own conversation
// history and configuration is resolved per request by the responders.
package fiber

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/onbuch/tutor"
	tutorjson "github.com/onbuch/tutor/json"
)

// Messages returned for failures that have no user-facing sentinel.
const (
	msgInternal  = "erreur interne"
	msgPlotEmpty = "impossible de tracer cette fonction"
)

// bodyLimit leaves room for base64 photos of exercises.
const bodyLimit = 12 * 1024 * 1024

// Config is the HTTP server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string
}

// Server exposes the tutor and assistant flows over HTTP.
type Server struct {
	config    Config
	tutor     tutor.Responder
	assistant tutor.Responder
	sampler   *tutor.Sampler
	logger    *zap.Logger
	app       *fiber.App
}

// New creates a Server and registers its routes.
func New(config Config, tutorResponder, assistantResponder tutor.Responder, sampler *tutor.Sampler, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
	})

	s := &Server{
		config:    config,
		tutor:     tutorResponder,
		assistant: assistantResponder,
		sampler:   sampler,
		logger:    logger,
		app:       app,
	}

	app.Post("/api/tutor", s.handleRespond(tutor.TutorProfile.Name, tutorResponder))
	app.Post("/api/assistant", s.handleRespond(tutor.AssistantProfile.Name, assistantResponder))
	app.Post("/api/plot", s.handlePlot)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return s
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts listening on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting tutor server", zap.String("listen", s.config.ListenAddr))
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleRespond(profile string, r tutor.Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		req, err := tutorjson.UnmarshalRequest(c.Body())
		if err != nil {
			s.logger.Debug("rejected request", zap.String("profile", profile), zap.Error(err))
			return s.writeError(c, fiber.StatusBadRequest, err.Error())
		}

		reply, err := r.Respond(c.UserContext(), req)
		if err != nil {
			return s.respondError(c, profile, err)
		}

		s.logger.Info("request answered",
			zap.String("profile", profile),
			zap.Int("history", len(req.History)),
			zap.Bool("image", req.HasImage()),
			zap.Bool("plot", reply.Plot != nil),
			zap.Duration("duration", time.Since(start)),
		)

		data, err := tutorjson.MarshalReply(reply)
		if err != nil {
			s.logger.Error("failed to encode reply", zap.Error(err))
			return s.writeError(c, fiber.StatusInternalServerError, msgInternal)
		}
		return s.writeJSON(c, fiber.StatusOK, data)
	}
}

func (s *Server) handlePlot(c *fiber.Ctx) error {
	expression, err := tutorjson.UnmarshalPlotRequest(c.Body())
	if err != nil {
		return s.writeError(c, fiber.StatusBadRequest, err.Error())
	}
	result, ok := s.sampler.Sample(expression)
	if !ok {
		return s.writeError(c, fiber.StatusUnprocessableEntity, msgPlotEmpty)
	}
	data, err := tutorjson.MarshalPlot(*result)
	if err != nil {
		s.logger.Error("failed to encode plot", zap.Error(err))
		return s.writeError(c, fiber.StatusInternalServerError, msgInternal)
	}
	return s.writeJSON(c, fiber.StatusOK, data)
}

// respondError maps responder failures to HTTP statuses. User-facing
// sentinels keep their French message; anything else is hidden.
func (s *Server) respondError(c *fiber.Ctx, profile string, err error) error {
	switch {
	case errors.Is(err, tutor.ErrServiceBusy):
		s.logger.Warn("model overloaded", zap.String("profile", profile))
		return s.writeError(c, fiber.StatusServiceUnavailable, tutor.ErrServiceBusy.Error())
	case errors.Is(err, tutor.ErrInvalidConfig):
		s.logger.Error("invalid AI configuration", zap.String("profile", profile))
		return s.writeError(c, fiber.StatusInternalServerError, tutor.ErrInvalidConfig.Error())
	case errors.Is(err, tutor.ErrValidation):
		return s.writeError(c, fiber.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", zap.String("profile", profile), zap.Error(err))
		return s.writeError(c, fiber.StatusInternalServerError, msgInternal)
	}
}

func (s *Server) writeError(c *fiber.Ctx, status int, msg string) error {
	data, err := tutorjson.MarshalError(msg)
	if err != nil {
		return err
	}
	return s.writeJSON(c, status, data)
}

func (s *Server) writeJSON(c *fiber.Ctx, status int, data []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(status).Send(data)
}
