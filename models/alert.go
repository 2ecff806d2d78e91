package models

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

type AlertStatus string

const (
	AlertStatusTriggered AlertStatus = "triggered"
	AlertStatusResolved  AlertStatus = "resolved"
)

// Alert is the persisted state of one alerting series: one monitor metric on
// one combination of axis values, identified by its dedup key.
type Alert struct {
	Id          string
	DedupKey    string
	MonitorName string
	// Metric is the full metric name, e.g. "system.cpu.total.pct".
	Metric string
	// Axes maps full axis names to the bucket values of the series.
	Axes             map[string]any
	Status           AlertStatus
	Severity         Severity
	Value            float64
	Diagnostic       string
	Message          string
	FirstTriggeredAt time.Time
	LastEvaluatedAt  time.Time
	ResolvedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AlertUpsert is the input of a triggered-alert upsert, keyed by DedupKey.
type AlertUpsert struct {
	DedupKey    string
	MonitorName string
	Metric      string
	Axes        map[string]any
	Severity    Severity
	Value       float64
	Diagnostic  string
	Message     string
}

type AlertFilters struct {
	Status      AlertStatus
	MonitorName string
	Limit       int
	Offset      int
}

// AxisItem pairs a full field name with its bucket value. The metric item of
// an alert identity carries a nil value.
type AxisItem struct {
	Key   string
	Value any
}

// AlertIdentity is the stable identity of an alerting series: the host axis
// items, the monitor axis items and the full metric name.
type AlertIdentity struct {
	HostAxes    []AxisItem
	MonitorAxes []AxisItem
	Metric      string
}

// Items returns all identity items sorted by key, the canonical form hashed
// into the dedup key.
func (id AlertIdentity) Items() []AxisItem {
	items := make([]AxisItem, 0, len(id.HostAxes)+len(id.MonitorAxes)+1)
	items = append(items, id.HostAxes...)
	items = append(items, id.MonitorAxes...)
	items = append(items, AxisItem{Key: id.Metric})
	slices.SortFunc(items, func(a, b AxisItem) int {
		return strings.Compare(a.Key, b.Key)
	})
	return items
}

// DedupKey hashes the sorted identity items into the key PagerDuty uses to
// deduplicate events of the same series.
func (id AlertIdentity) DedupKey() string {
	items := id.Items()
	pairs := make([][2]any, len(items))
	for i, item := range items {
		pairs[i] = [2]any{item.Key, item.Value}
	}
	raw, err := json.Marshal(pairs)
	if err != nil {
		// Axis values come from decoded JSON, they always re-marshal.
		panic(err)
	}
	sum := sha256.Sum256(raw)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Source is the host identification string of the series, e.g.
// "eu-west-1/i-00b05b0ec0795d08d".
func (id AlertIdentity) Source() string {
	return joinAxisValues(id.HostAxes)
}

// Component is the sub-host identification of the series, e.g. the disk
// device name. Empty when the monitor has no extra axes.
func (id AlertIdentity) Component() string {
	return joinAxisValues(id.MonitorAxes)
}

// CustomDetails returns the axis items as a map for the event payload.
func (id AlertIdentity) CustomDetails() map[string]any {
	details := make(map[string]any, len(id.HostAxes)+len(id.MonitorAxes))
	for _, item := range id.HostAxes {
		details[item.Key] = item.Value
	}
	for _, item := range id.MonitorAxes {
		details[item.Key] = item.Value
	}
	return details
}

// AxesMap returns all axis items as a map, for alert persistence.
func (id AlertIdentity) AxesMap() map[string]any {
	return id.CustomDetails()
}

func joinAxisValues(items []AxisItem) string {
	values := make([]string, len(items))
	for i, item := range items {
		values[i] = formatAxisValue(item.Value)
	}
	return strings.Join(values, "/")
}

func formatAxisValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		// Bucket keys of numeric fields (ex: process PIDs) come back as
		// JSON numbers.
		return strconv.FormatFloat(value, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return fmt.Sprint(v)
	}
}
