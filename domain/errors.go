package domain

import "errors"

var (
	// ErrInvalidInput marks malformed engine requests. Callers match it with errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	ErrDecisionNotFound = errors.New("decision not found")

	// ErrOutcomeRecorded is returned when a decision already has an outcome.
	ErrOutcomeRecorded = errors.New("outcome already recorded")
)
