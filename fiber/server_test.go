package fiber_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/onbuch/tutor"
	tutorfiber "github.com/onbuch/tutor/fiber"
	"github.com/onbuch/tutor/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func squareSampler() *tutor.Sampler {
	return tutor.NewSampler(&mock.Evaluator{
		CompileFn: func(expression string) (tutor.Function, error) {
			if expression != "x^2" {
				return nil, errors.New("unknown expression")
			}
			return func(x float64) (float64, error) { return x * x, nil }, nil
		},
	})
}

func newServer(t *testing.T, tutorR, assistantR tutor.Responder) *tutorfiber.Server {
	t.Helper()
	if tutorR == nil {
		tutorR = &mock.Responder{RespondFn: func(context.Context, tutor.Request) (tutor.Reply, error) {
			t.Error("tutor responder should not be called")
			return tutor.Reply{}, nil
		}}
	}
	if assistantR == nil {
		assistantR = &mock.Responder{RespondFn: func(context.Context, tutor.Request) (tutor.Reply, error) {
			t.Error("assistant responder should not be called")
			return tutor.Reply{}, nil
		}}
	}
	return tutorfiber.New(tutorfiber.Config{ListenAddr: ":0"}, tutorR, assistantR, squareSampler(), zap.NewNop())
}

func do(t *testing.T, s *tutorfiber.Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return resp.StatusCode, out
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	s := newServer(t, nil, nil)

	status, body := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_Tutor(t *testing.T) {
	t.Parallel()
	var got tutor.Request
	s := newServer(t, &mock.Responder{
		RespondFn: func(_ context.Context, req tutor.Request) (tutor.Reply, error) {
			got = req
			return tutor.Reply{Response: "Une dérivée mesure la pente."}, nil
		},
	}, nil)

	status, body := do(t, s, http.MethodPost, "/api/tutor", `{
		"message": "C'est quoi une dérivée ?",
		"history": [
			{"role": "user", "content": "Bonjour"},
			{"role": "assistant", "content": "Bonjour ! Que veux-tu réviser ?"}
		]
	}`)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Une dérivée mesure la pente.", body["response"])
	assert.NotContains(t, body, "plotData")
	assert.Equal(t, "C'est quoi une dérivée ?", got.Message)
	assert.Equal(t, []tutor.Turn{
		tutor.UserTurn("Bonjour"),
		tutor.ModelTurn("Bonjour ! Que veux-tu réviser ?"),
	}, got.History)
}

func TestServer_TutorPlotReply(t *testing.T) {
	t.Parallel()
	s := newServer(t, &mock.Responder{
		RespondFn: func(context.Context, tutor.Request) (tutor.Reply, error) {
			return tutor.Reply{
				Response: "Voici le graphique de la fonction demandée :",
				Plot: &tutor.PlotResult{
					Function: "f(x) = x^2",
					Points:   []tutor.Point{{X: -1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1}},
				},
			}, nil
		},
	}, nil)

	status, body := do(t, s, http.MethodPost, "/api/tutor", `{"message": "trace x^2"}`)

	require.Equal(t, http.StatusOK, status)
	plot, ok := body["plotData"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "f(x) = x^2", plot["function"])
	assert.Len(t, plot["points"], 3)
}

func TestServer_Assistant(t *testing.T) {
	t.Parallel()
	s := newServer(t, nil, &mock.Responder{
		RespondFn: func(_ context.Context, req tutor.Request) (tutor.Reply, error) {
			return tutor.Reply{Response: "Réponse à " + req.Message}, nil
		},
	})

	status, body := do(t, s, http.MethodPost, "/api/assistant", `{"message": "Comment réviser ?"}`)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Réponse à Comment réviser ?", body["response"])
}

func TestServer_RespondErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"busy", tutor.ErrServiceBusy, http.StatusServiceUnavailable, tutor.ErrServiceBusy.Error()},
		{"invalid config", tutor.ErrInvalidConfig, http.StatusInternalServerError, tutor.ErrInvalidConfig.Error()},
		{"validation", tutor.ErrValidation, http.StatusBadRequest, tutor.ErrValidation.Error()},
		{"other", errors.New("gemini: connection reset"), http.StatusInternalServerError, "erreur interne"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newServer(t, &mock.Responder{
				RespondFn: func(context.Context, tutor.Request) (tutor.Reply, error) {
					return tutor.Reply{}, tt.err
				},
			}, nil)

			status, body := do(t, s, http.MethodPost, "/api/tutor", `{"message": "Bonjour"}`)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestServer_InvalidBody(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"message":`},
		{"empty", `{}`},
		{"bad role", `{"message": "a", "history": [{"role": "system", "content": "b"}]}`},
		{"bad image", `{"image": "not a data uri"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newServer(t, nil, nil)

			status, body := do(t, s, http.MethodPost, "/api/tutor", tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestServer_Plot(t *testing.T) {
	t.Parallel()
	s := newServer(t, nil, nil)

	status, body := do(t, s, http.MethodPost, "/api/plot", `{"expression": "x^2"}`)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "f(x) = x^2", body["function"])
	points, ok := body["points"].([]any)
	require.True(t, ok)
	assert.Len(t, points, 101)
	assert.Equal(t, map[string]any{"x": -10.0, "y": 100.0}, points[0])
}

func TestServer_PlotUnsampleable(t *testing.T) {
	t.Parallel()
	s := newServer(t, nil, nil)

	status, body := do(t, s, http.MethodPost, "/api/plot", `{"expression": "bonjour"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "impossible de tracer cette fonction", body["error"])
}

func TestServer_PlotMissingExpression(t *testing.T) {
	t.Parallel()
	s := newServer(t, nil, nil)

	status, _ := do(t, s, http.MethodPost, "/api/plot", `{}`)

	assert.Equal(t, http.StatusBadRequest, status)
}
