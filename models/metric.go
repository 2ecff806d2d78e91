package models

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// DefaultAgg is the bucket aggregation used for metric specs given without
// one.
const DefaultAgg = "avg"

// MetricSpec is a parsed metric specification of the form "name[:agg]".
// Raw keeps the spec as given, which is also the aggregation bucket key in
// queries and tabulated results.
type MetricSpec struct {
	Raw  string
	Name string
	Agg  string
}

func ParseMetricSpec(spec string) MetricSpec {
	if idx := strings.LastIndex(spec, ":"); idx >= 0 {
		return MetricSpec{Raw: spec, Name: spec[:idx], Agg: spec[idx+1:]}
	}
	return MetricSpec{Raw: spec, Name: spec, Agg: DefaultAgg}
}

func (m MetricSpec) Validate() error {
	if m.Name == "" || m.Agg == "" {
		return errors.Wrap(ErrInvalidMetricSpec, fmt.Sprintf("'%s'", m.Raw))
	}
	return nil
}

// FullFieldName expands a shorthand field name starting with a dot into
// "<module>.<metricset><name>", the convention used by Metricbeat modules.
// Names not starting with a dot are returned unchanged.
func FullFieldName(module, metricset, name string) string {
	if strings.HasPrefix(name, ".") {
		return module + "." + metricset + name
	}
	return name
}

// DeduceModuleMetricset extracts the module and metricset names from the
// first two dotted components of a full metric name, for monitors that do
// not set them explicitly.
func DeduceModuleMetricset(metricSpec string) (module, metricset string, err error) {
	parts := strings.Split(ParseMetricSpec(metricSpec).Name, ".")
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Wrap(ErrInvalidMetricSpec,
			fmt.Sprintf("cannot deduce module and metricset from '%s'", metricSpec))
	}
	return parts[0], parts[1], nil
}
