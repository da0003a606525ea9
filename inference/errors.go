package inference

import "errors"

var (
	// ErrModelUnavailable is returned when no ensemble artifact was loaded at startup.
	ErrModelUnavailable = errors.New("prediction model not loaded")

	// ErrUnknownFeatureSchema is returned when the artifact declares a feature column
	// the builder does not know how to produce.
	ErrUnknownFeatureSchema = errors.New("unknown feature schema")

	// ErrInferenceFailure wraps any failure while scaling or running base models.
	ErrInferenceFailure = errors.New("inference failed")

	// ErrInvalidRequest is returned for prediction bodies that fail validation.
	ErrInvalidRequest = errors.New("invalid prediction request")
)
