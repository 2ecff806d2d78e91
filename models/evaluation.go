package models

type EvaluationAction string

const (
	EvaluationActionTriggered EvaluationAction = "triggered"
	EvaluationActionResolved  EvaluationAction = "resolved"
	EvaluationActionNone      EvaluationAction = "none"
)

// EvaluationDecision is the outcome of checking one series point against its
// threshold ladder.
type EvaluationDecision struct {
	DedupKey   string
	Metric     string
	Axes       map[string]any
	Value      float64
	Action     EvaluationAction
	Severity   Severity
	Diagnostic string
}
