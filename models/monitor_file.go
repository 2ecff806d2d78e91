package models

import (
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

type monitorsFile struct {
	Monitors []monitorFileEntry `yaml:"monitors"`
}

type monitorFileEntry struct {
	Name      string                     `yaml:"name"`
	Module    string                     `yaml:"module"`
	Metricset string                     `yaml:"metricset"`
	Axes      []string                   `yaml:"axes"`
	Window    string                     `yaml:"window"`
	Period    string                     `yaml:"period"`
	Metrics   map[string]metricFileEntry `yaml:"metrics"`
}

type metricFileEntry struct {
	Message    string             `yaml:"message"`
	Thresholds map[string]float64 `yaml:"thresholds"`
}

// ParseMonitorsFile parses a YAML monitor definition file. Durations use the
// Go syntax ("10s", "5m"). The parsed monitors fully replace the built-in
// set.
func ParseMonitorsFile(data []byte) ([]Monitor, error) {
	var file monitorsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.Join(BadParameterError, err), "cannot parse monitors file")
	}
	if len(file.Monitors) == 0 {
		return nil, errors.Wrap(BadParameterError, "monitors file defines no monitors")
	}

	monitors := make([]Monitor, 0, len(file.Monitors))
	seen := make(map[string]struct{}, len(file.Monitors))
	for _, entry := range file.Monitors {
		monitor, err := entry.adapt()
		if err != nil {
			return nil, err
		}
		if _, ok := seen[monitor.Name]; ok {
			return nil, errors.Wrap(ConflictError,
				fmt.Sprintf("duplicate monitor name '%s'", monitor.Name))
		}
		seen[monitor.Name] = struct{}{}
		monitors = append(monitors, monitor)
	}
	return monitors, nil
}

func LoadMonitorsFile(path string) ([]Monitor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read monitors file '%s'", path)
	}
	return ParseMonitorsFile(data)
}

func (entry monitorFileEntry) adapt() (Monitor, error) {
	window, err := parseFileDuration(entry.Name, "window", entry.Window)
	if err != nil {
		return Monitor{}, err
	}
	period, err := parseFileDuration(entry.Name, "period", entry.Period)
	if err != nil {
		return Monitor{}, err
	}

	metrics := make(map[string]MetricThresholds, len(entry.Metrics))
	for spec, metricEntry := range entry.Metrics {
		levels := make(map[Severity]float64, len(metricEntry.Thresholds))
		for name, threshold := range metricEntry.Thresholds {
			severity, err := SeverityFromString(name)
			if err != nil {
				return Monitor{}, errors.Wrapf(err, "monitor '%s', metric '%s'", entry.Name, spec)
			}
			levels[severity] = threshold
		}
		metrics[spec] = MetricThresholds{Message: metricEntry.Message, Levels: levels}
	}

	return NormalizeMonitor(Monitor{
		Name:      entry.Name,
		Module:    entry.Module,
		Metricset: entry.Metricset,
		Axes:      entry.Axes,
		Metrics:   metrics,
		Window:    window,
		Period:    period,
	})
}

func parseFileDuration(monitorName, field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Wrap(BadParameterError,
			fmt.Sprintf("monitor '%s': invalid %s '%s'", monitorName, field, value))
	}
	return duration, nil
}
