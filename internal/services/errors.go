package services

import "errors"

var (
	// ErrGenerationFailed is joined with the cause of any failed
	// recommendation call: transport, refusal or schema mismatch.
	ErrGenerationFailed = errors.New("generation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
)
