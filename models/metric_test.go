package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMetricSpec(t *testing.T) {
	spec := ParseMetricSpec(".total.pct:avg")
	assert.Equal(t, ".total.pct", spec.Name)
	assert.Equal(t, "avg", spec.Agg)
	assert.Equal(t, ".total.pct:avg", spec.Raw)

	spec = ParseMetricSpec(".iostat.busy")
	assert.Equal(t, ".iostat.busy", spec.Name)
	assert.Equal(t, DefaultAgg, spec.Agg)

	spec = ParseMetricSpec("system.filesystem.free:min")
	assert.Equal(t, "system.filesystem.free", spec.Name)
	assert.Equal(t, "min", spec.Agg)
}

func TestFullFieldName(t *testing.T) {
	assert.Equal(t, "system.memory.used.pct", FullFieldName("system", "memory", ".used.pct"))
	assert.Equal(t, "cloud.instance.id", FullFieldName("system", "memory", "cloud.instance.id"))
}

func TestDeduceModuleMetricset(t *testing.T) {
	module, metricset, err := DeduceModuleMetricset("system.memory.used.pct:avg")
	assert.NoError(t, err)
	assert.Equal(t, "system", module)
	assert.Equal(t, "memory", metricset)

	_, _, err = DeduceModuleMetricset(".used.pct:avg")
	assert.ErrorIs(t, err, ErrInvalidMetricSpec)
}
