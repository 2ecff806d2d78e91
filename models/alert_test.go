package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIdentity() AlertIdentity {
	return AlertIdentity{
		HostAxes: []AxisItem{
			{Key: "cloud.region", Value: "eu-west-1"},
			{Key: "cloud.instance.id", Value: "i-00b05b0ec0795d08d"},
		},
		MonitorAxes: []AxisItem{
			{Key: "system.diskio.name", Value: "nvme0n1"},
		},
		Metric: "system.diskio.iostat.busy",
	}
}

func TestAlertIdentityItemsAreSorted(t *testing.T) {
	items := sampleIdentity().Items()
	require.Len(t, items, 4)

	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Key, items[i].Key)
	}

	// the metric item carries no value
	assert.Equal(t, AxisItem{Key: "system.diskio.iostat.busy"}, items[3])
}

func TestAlertIdentityDedupKeyIsStable(t *testing.T) {
	key := sampleIdentity().DedupKey()
	assert.Equal(t, key, sampleIdentity().DedupKey())

	// axis item order does not matter, only content does
	shuffled := sampleIdentity()
	shuffled.HostAxes = []AxisItem{shuffled.HostAxes[1], shuffled.HostAxes[0]}
	assert.Equal(t, key, shuffled.DedupKey())

	// 44 characters of standard base64 for a sha256 digest
	assert.Len(t, key, 44)
}

func TestAlertIdentityDedupKeyDiscriminates(t *testing.T) {
	key := sampleIdentity().DedupKey()

	otherDevice := sampleIdentity()
	otherDevice.MonitorAxes[0].Value = "nvme1n1"
	assert.NotEqual(t, key, otherDevice.DedupKey())

	otherMetric := sampleIdentity()
	otherMetric.Metric = "system.diskio.iostat.await"
	assert.NotEqual(t, key, otherMetric.DedupKey())
}

func TestAlertIdentitySourceAndComponent(t *testing.T) {
	identity := sampleIdentity()
	assert.Equal(t, "eu-west-1/i-00b05b0ec0795d08d", identity.Source())
	assert.Equal(t, "nvme0n1", identity.Component())
}

func TestAlertIdentityCustomDetails(t *testing.T) {
	details := sampleIdentity().CustomDetails()
	assert.Equal(t, map[string]any{
		"cloud.region":       "eu-west-1",
		"cloud.instance.id":  "i-00b05b0ec0795d08d",
		"system.diskio.name": "nvme0n1",
	}, details)
}

func TestFormatAxisValue(t *testing.T) {
	assert.Equal(t, "nvme0n1", formatAxisValue("nvme0n1"))
	assert.Equal(t, "1234", formatAxisValue(float64(1234)))
	assert.Equal(t, "1.5", formatAxisValue(1.5))
	assert.Equal(t, "42", formatAxisValue(int64(42)))
}
