package tutor

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request, turn or domain failed validation.
	ErrValidation = errors.New("validation error")

	// ErrMissingAPIKey indicates neither the settings store nor the
	// environment provided a model API key.
	ErrMissingAPIKey = errors.New("missing model API key")

	// ErrSettingNotFound is returned by a SettingsStore for an unknown key.
	ErrSettingNotFound = errors.New("setting not found")
)

// User-facing errors. Their messages are shown verbatim to students.
var (
	// ErrInvalidConfig reports a missing or rejected model credential.
	ErrInvalidConfig = errors.New("Configuration de l'IA invalide. Veuillez vérifier la clé API dans les paramètres d'administration.")

	// ErrServiceBusy reports an overloaded upstream model.
	ErrServiceBusy = errors.New("Le service d'IA est actuellement surchargé. Veuillez réessayer dans quelques instants.")
)
