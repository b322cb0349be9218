package tutor_test

import (
	"math"
	"testing"

	"github.com/onbuch/tutor"
	"github.com/stretchr/testify/assert"
)

func TestDomain_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		domain  tutor.Domain
		wantErr bool
	}{
		{"default", tutor.DefaultDomain, false},
		{"zero steps", tutor.Domain{Min: -1, Max: 1, Steps: 0}, true},
		{"negative steps", tutor.Domain{Min: -1, Max: 1, Steps: -5}, true},
		{"inverted bounds", tutor.Domain{Min: 1, Max: -1, Steps: 10}, true},
		{"empty interval", tutor.Domain{Min: 1, Max: 1, Steps: 10}, true},
		{"infinite bound", tutor.Domain{Min: math.Inf(-1), Max: 1, Steps: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.domain.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, tutor.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDomain_Abscissa(t *testing.T) {
	t.Parallel()
	d := tutor.DefaultDomain
	assert.Equal(t, -10.0, d.Abscissa(0))
	assert.Equal(t, 0.0, d.Abscissa(50))
	assert.Equal(t, 10.0, d.Abscissa(100))
}

func TestValidateTurn(t *testing.T) {
	t.Parallel()
	assert.NoError(t, tutor.ValidateTurn(tutor.UserTurn("bonjour")))
	assert.NoError(t, tutor.ValidateTurn(tutor.ModelTurn("salut")))
	assert.ErrorIs(t, tutor.ValidateTurn(tutor.Turn{Role: "system"}), tutor.ErrValidation)
}

func TestParseRole(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		want   tutor.Role
		wantOK bool
	}{
		{"user", tutor.RoleUser, true},
		{"model", tutor.RoleModel, true},
		{"assistant", tutor.RoleModel, true},
		{"system", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := tutor.ParseRole(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
