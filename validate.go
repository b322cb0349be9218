package tutor

import (
	"fmt"
	"math"
)

// Validate checks that the domain can be sampled.
func (d Domain) Validate() error {
	if d.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", d.Steps, ErrValidation)
	}
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return fmt.Errorf("bounds must be finite: %w", ErrValidation)
	}
	if d.Min >= d.Max {
		return fmt.Errorf("min must be below max, got [%g, %g]: %w", d.Min, d.Max, ErrValidation)
	}
	return nil
}

// ValidateTurn checks that a history turn has a known role.
func ValidateTurn(t Turn) error {
	switch t.Role {
	case RoleUser, RoleModel:
		return nil
	default:
		return fmt.Errorf("unknown role %q: %w", t.Role, ErrValidation)
	}
}
