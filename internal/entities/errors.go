// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidConfig signals a missing or malformed action input.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrMalformedResponse signals an upstream payload missing expected nested fields.
	ErrMalformedResponse = errors.New("malformed upstream response")
	// ErrPRNotFound signals missing PR.
	ErrPRNotFound = errors.New("pr not found")
	// ErrStatusNotFound signals that no status was recorded for a PR.
	ErrStatusNotFound = errors.New("status not found")
	// ErrUnknownStatus signals a value outside the closed ReviewStatus set.
	ErrUnknownStatus = errors.New("unknown review status")
	// ErrUnauthorized signals a webhook payload with a bad signature.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDelivery signals a failed label mutation or chat delivery.
	ErrDelivery = errors.New("delivery failed")
)
