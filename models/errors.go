package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Monitor configuration related errors
var (
	ErrUnknownMonitor         = errors.Wrap(NotFoundError, "unknown monitor")
	ErrThresholdsNotMonotonic = errors.Wrap(BadParameterError,
		"thresholds are neither strictly increasing nor strictly decreasing")
	ErrInvalidMetricSpec = errors.Wrap(BadParameterError, "invalid metric spec")
	ErrInvalidMonitor    = errors.Wrap(BadParameterError, "invalid monitor")
)

// Delivery related errors
var ErrDeliveryRejected = errors.New("event endpoint rejected the delivery")
