package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// SeverityLevels lists severities from least to most severe. Threshold
// ladders are checked in this order.
var SeverityLevels = []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical}

func SeverityFromString(s string) (Severity, error) {
	for _, level := range SeverityLevels {
		if string(level) == s {
			return level, nil
		}
	}
	return "", errors.Wrap(BadParameterError, fmt.Sprintf("unknown severity '%s'", s))
}
