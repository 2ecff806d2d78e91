package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
)

// HostAxes identify the reporting host. They prefix the bucketing axes of
// every monitor.
var HostAxes = []string{"cloud.region", "cloud.instance.id"}

const DefaultWindow = 5 * time.Minute

// Monitor is a periodic evaluation of one Metricbeat metricset: every Period,
// the metrics are aggregated over the trailing Window, bucketed by HostAxes
// plus the monitor's extra Axes, and each value is checked against its
// severity ladder.
type Monitor struct {
	Name      string
	Module    string
	Metricset string
	// Axes are bucketing axes beyond HostAxes. Shorthand names starting
	// with a dot are expanded against Module and Metricset.
	Axes []string
	// Metrics maps metric specs ("name[:agg]") to their threshold ladders.
	Metrics map[string]MetricThresholds
	Window  time.Duration
	Period  time.Duration
}

// FullFieldName expands a shorthand axis or metric name against the
// monitor's module and metricset.
func (m Monitor) FullFieldName(name string) string {
	return FullFieldName(m.Module, m.Metricset, name)
}

// AllAxes returns the host axes followed by the monitor's extra axes, in
// bucketing order.
func (m Monitor) AllAxes() []string {
	return append(slices.Clone(HostAxes), m.Axes...)
}

// MetricSpecs returns the monitor's metric specs in a deterministic order.
func (m Monitor) MetricSpecs() []string {
	specs := make([]string, 0, len(m.Metrics))
	for spec := range m.Metrics {
		specs = append(specs, spec)
	}
	slices.Sort(specs)
	return specs
}

func (m Monitor) Validate() error {
	if m.Name == "" {
		return errors.Wrap(ErrInvalidMonitor, "monitor has no name")
	}
	if m.Module == "" || m.Metricset == "" {
		return errors.Wrap(ErrInvalidMonitor,
			fmt.Sprintf("monitor '%s' has no module or metricset", m.Name))
	}
	if len(m.Metrics) == 0 {
		return errors.Wrap(ErrInvalidMonitor, fmt.Sprintf("monitor '%s' has no metrics", m.Name))
	}
	if m.Window <= 0 {
		return errors.Wrap(ErrInvalidMonitor, fmt.Sprintf("monitor '%s' has no window", m.Name))
	}
	if m.Period <= 0 {
		return errors.Wrap(ErrInvalidMonitor, fmt.Sprintf("monitor '%s' has no period", m.Name))
	}
	for spec, thresholds := range m.Metrics {
		if err := ParseMetricSpec(spec).Validate(); err != nil {
			return errors.Wrapf(err, "monitor '%s'", m.Name)
		}
		if err := thresholds.Validate(); err != nil {
			return errors.Wrapf(err, "monitor '%s', metric '%s'", m.Name, spec)
		}
	}
	return nil
}

// NormalizeMonitor fills in the module and metricset from the first metric
// spec when they are not set explicitly, then validates the monitor.
func NormalizeMonitor(m Monitor) (Monitor, error) {
	if m.Module == "" || m.Metricset == "" {
		specs := m.MetricSpecs()
		if len(specs) == 0 {
			return Monitor{}, errors.Wrap(ErrInvalidMonitor,
				fmt.Sprintf("monitor '%s' has no metrics", m.Name))
		}
		module, metricset, err := DeduceModuleMetricset(specs[0])
		if err != nil {
			return Monitor{}, errors.Wrapf(err, "monitor '%s'", m.Name)
		}
		m.Module = module
		m.Metricset = metricset
	}
	if m.Window == 0 {
		m.Window = DefaultWindow
	}
	if err := m.Validate(); err != nil {
		return Monitor{}, err
	}
	return m, nil
}
