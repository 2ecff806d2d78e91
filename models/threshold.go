package models

import (
	"fmt"
)

// MetricThresholds is the severity ladder for one metric of a monitor. The
// configured thresholds must be strictly increasing (the value alerts when it
// reaches a threshold from below) or strictly decreasing (the value alerts
// when it reaches a threshold from above).
type MetricThresholds struct {
	Message string
	Levels  map[Severity]float64
}

// ThresholdBreach is the outcome of a ladder check: the most severe level the
// value crossed, with a human-readable diagnostic such as "97.2 >= 95".
type ThresholdBreach struct {
	Severity   Severity
	Threshold  float64
	Diagnostic string
}

type thresholdStep struct {
	level Severity
	value float64
}

func (t MetricThresholds) steps() []thresholdStep {
	steps := make([]thresholdStep, 0, len(SeverityLevels))
	for _, level := range SeverityLevels {
		if threshold, ok := t.Levels[level]; ok {
			steps = append(steps, thresholdStep{level: level, value: threshold})
		}
	}
	return steps
}

func (t MetricThresholds) Validate() error {
	steps := t.steps()
	if len(steps) == 0 {
		return nil
	}
	if !strictlyIncreasing(steps) && !strictlyDecreasing(steps) {
		return ErrThresholdsNotMonotonic
	}
	return nil
}

// Check returns the most severe level whose threshold the value crossed, or
// nil if the value is in range. A ladder with no thresholds never breaches.
// The ladder must have passed Validate; monitors are validated at load.
func (t MetricThresholds) Check(value float64) *ThresholdBreach {
	steps := t.steps()
	if len(steps) == 0 {
		return nil
	}

	// A single-step ladder counts as increasing.
	increasing := strictlyIncreasing(steps)

	var breach *ThresholdBreach
	for _, step := range steps {
		if (increasing && value < step.value) || (!increasing && value > step.value) {
			break
		}
		diag := fmt.Sprintf("%v >= %v", value, step.value)
		if !increasing {
			diag = fmt.Sprintf("%v <= %v", value, step.value)
		}
		breach = &ThresholdBreach{Severity: step.level, Threshold: step.value, Diagnostic: diag}
	}
	return breach
}

func strictlyIncreasing(steps []thresholdStep) bool {
	for i := 1; i < len(steps); i++ {
		if steps[i-1].value >= steps[i].value {
			return false
		}
	}
	return true
}

func strictlyDecreasing(steps []thresholdStep) bool {
	for i := 1; i < len(steps); i++ {
		if steps[i-1].value <= steps[i].value {
			return false
		}
	}
	return true
}
