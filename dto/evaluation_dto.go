package dto

import (
	"github.com/offkey/offkey/models"
)

type EvaluationDecision struct {
	DedupKey   string         `json:"dedup_key"`
	Metric     string         `json:"metric"`
	Axes       map[string]any `json:"axes,omitempty"`
	Value      float64        `json:"value"`
	Action     string         `json:"action"`
	Severity   string         `json:"severity,omitempty"`
	Diagnostic string         `json:"diagnostic,omitempty"`
}

func AdaptEvaluationDecisionDto(decision models.EvaluationDecision) EvaluationDecision {
	return EvaluationDecision{
		DedupKey:   decision.DedupKey,
		Metric:     decision.Metric,
		Axes:       decision.Axes,
		Value:      decision.Value,
		Action:     string(decision.Action),
		Severity:   string(decision.Severity),
		Diagnostic: decision.Diagnostic,
	}
}
