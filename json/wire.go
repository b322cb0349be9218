// Package json implements the JSON wire format of the tutor HTTP API and
// the on-disk conversation history used by the CLI.
package json

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/onbuch/tutor"
)

var validate = validator.New()

// requestDTO is the body of POST /api/tutor and /api/assistant.
type requestDTO struct {
	Message string    `json:"message" validate:"required_without=Image,max=8000"`
	Image   string    `json:"image,omitempty" validate:"omitempty,datauri"`
	History []turnDTO `json:"history" validate:"max=200,dive"`
}

type turnDTO struct {
	Role    string `json:"role" validate:"required,oneof=user model assistant"`
	Content string `json:"content"`
}

type replyDTO struct {
	Response string   `json:"response"`
	PlotData *plotDTO `json:"plotData,omitempty"`
}

type plotDTO struct {
	Function string     `json:"function"`
	Points   []pointDTO `json:"points"`
}

type pointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type plotRequestDTO struct {
	Expression string `json:"expression" validate:"required,max=200"`
}

type errorDTO struct {
	Error string `json:"error"`
}

// UnmarshalRequest decodes and validates a tutor request body. Validation
// failures wrap tutor.ErrValidation.
func UnmarshalRequest(data []byte) (tutor.Request, error) {
	var dto requestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return tutor.Request{}, fmt.Errorf("decode request: %v: %w", err, tutor.ErrValidation)
	}
	if err := validateStruct(dto); err != nil {
		return tutor.Request{}, err
	}
	history, err := turnsFromDTO(dto.History)
	if err != nil {
		return tutor.Request{}, err
	}
	return tutor.Request{
		Message: dto.Message,
		Image:   dto.Image,
		History: history,
	}, nil
}

// MarshalReply encodes a reply. plotData is omitted when no plot was made.
func MarshalReply(r tutor.Reply) ([]byte, error) {
	dto := replyDTO{Response: r.Response}
	if r.Plot != nil {
		p := plotToDTO(*r.Plot)
		dto.PlotData = &p
	}
	return json.Marshal(dto)
}

// UnmarshalPlotRequest decodes the body of POST /api/plot.
func UnmarshalPlotRequest(data []byte) (string, error) {
	var dto plotRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return "", fmt.Errorf("decode plot request: %v: %w", err, tutor.ErrValidation)
	}
	if err := validateStruct(dto); err != nil {
		return "", err
	}
	return dto.Expression, nil
}

// MarshalPlot encodes a plot payload.
func MarshalPlot(p tutor.PlotResult) ([]byte, error) {
	return json.Marshal(plotToDTO(p))
}

// MarshalError encodes an error body.
func MarshalError(msg string) ([]byte, error) {
	return json.Marshal(errorDTO{Error: msg})
}

func plotToDTO(p tutor.PlotResult) plotDTO {
	points := make([]pointDTO, len(p.Points))
	for i, pt := range p.Points {
		points[i] = pointDTO{X: pt.X, Y: pt.Y}
	}
	return plotDTO{Function: p.Function, Points: points}
}

func turnsFromDTO(dtos []turnDTO) ([]tutor.Turn, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	turns := make([]tutor.Turn, len(dtos))
	for i, d := range dtos {
		role, ok := tutor.ParseRole(d.Role)
		if !ok {
			return nil, fmt.Errorf("turn %d: unknown role %q: %w", i, d.Role, tutor.ErrValidation)
		}
		turns[i] = tutor.Turn{Role: role, Content: d.Content}
	}
	return turns, nil
}

func turnsToDTO(turns []tutor.Turn) []turnDTO {
	dtos := make([]turnDTO, len(turns))
	for i, t := range turns {
		dtos[i] = turnDTO{Role: string(t.Role), Content: t.Content}
	}
	return dtos
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("field %s failed %q: %w", fe.Namespace(), fe.Tag(), tutor.ErrValidation)
	}
	return fmt.Errorf("%v: %w", err, tutor.ErrValidation)
}
