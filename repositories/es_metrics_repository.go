package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/tidwall/gjson"

	"github.com/offkey/offkey/models"
)

// MetricbeatIndex is the index pattern Metricbeat writes to by default.
const MetricbeatIndex = "metricbeat-*"

type MetricsRepository interface {
	QuerySeries(ctx context.Context, monitor models.Monitor, endTime time.Time) ([]models.SeriesPoint, error)
}

type ElasticsearchMetricsRepository struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchMetricsRepository(client *elasticsearch.Client, index string) *ElasticsearchMetricsRepository {
	if index == "" {
		index = MetricbeatIndex
	}
	return &ElasticsearchMetricsRepository{client: client, index: index}
}

// EsTimestamp formats a time as an Elasticsearch-style ISO 8601 UTC timestamp
// with millisecond precision, the format of the @timestamp field.
func EsTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Millisecond).Format("2006-01-02T15:04:05.000Z")
}

// BuildBucketSearch builds the aggregation search of one monitor evaluation:
// term filters on the metricset, a range filter on the trailing window, one
// nested terms bucket per axis and, at the innermost level, one metric
// aggregation per metric spec, keyed by the literal spec string. Matched
// documents are not requested.
func BuildBucketSearch(monitor models.Monitor, endTime time.Time) map[string]any {
	startTime := endTime.Add(-monitor.Window)

	aggs := map[string]any{}
	for _, spec := range monitor.MetricSpecs() {
		parsed := models.ParseMetricSpec(spec)
		aggs[spec] = map[string]any{
			parsed.Agg: map[string]any{"field": monitor.FullFieldName(parsed.Name)},
		}
	}

	axes := monitor.AllAxes()
	for i := len(axes) - 1; i >= 0; i-- {
		aggs = map[string]any{
			axes[i]: map[string]any{
				"terms": map[string]any{"field": monitor.FullFieldName(axes[i])},
				"aggs":  aggs,
			},
		}
	}

	return map[string]any{
		"size": 0,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					map[string]any{"term": map[string]any{"metricset.module": monitor.Module}},
					map[string]any{"term": map[string]any{"metricset.name": monitor.Metricset}},
					map[string]any{"range": map[string]any{"@timestamp": map[string]any{
						"gte": EsTimestamp(startTime),
						"lt":  EsTimestamp(endTime),
					}}},
				},
			},
		},
		"aggs": aggs,
	}
}

func (repo *ElasticsearchMetricsRepository) QuerySeries(
	ctx context.Context,
	monitor models.Monitor,
	endTime time.Time,
) ([]models.SeriesPoint, error) {
	body, err := json.Marshal(BuildBucketSearch(monitor, endTime))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal metricbeat search")
	}

	res, err := repo.client.Search(
		repo.client.Search.WithContext(ctx),
		repo.client.Search.WithIndex(repo.index),
		repo.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error executing metricbeat search")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading metricbeat response")
	}
	if res.IsError() {
		return nil, errors.Newf("metricbeat search failed with status %s: %s",
			res.Status(), string(raw))
	}

	return TabulateBucketResponse(raw, monitor), nil
}

// TabulateBucketResponse flattens the nested terms buckets of a search
// response into one point per (axis values, metric) combination. Buckets
// whose aggregation produced no value are skipped.
func TabulateBucketResponse(raw []byte, monitor models.Monitor) []models.SeriesPoint {
	points := make([]models.SeriesPoint, 0)
	aggs := gjson.GetBytes(raw, "aggregations")
	if !aggs.Exists() {
		return points
	}
	walkBuckets(aggs, monitor.AllAxes(), monitor.MetricSpecs(), nil, &points)
	return points
}

func walkBuckets(node gjson.Result, axes, metrics []string, axisValues []any, out *[]models.SeriesPoint) {
	if len(axes) == 0 {
		for _, metric := range metrics {
			value := node.Get(escapeGjsonPath(metric) + ".value")
			if !value.Exists() || value.Type == gjson.Null {
				continue
			}
			*out = append(*out, models.SeriesPoint{
				AxisValues: slices.Clone(axisValues),
				Metric:     metric,
				Value:      value.Float(),
			})
		}
		return
	}

	buckets := node.Get(escapeGjsonPath(axes[0]) + ".buckets")
	buckets.ForEach(func(_, bucket gjson.Result) bool {
		walkBuckets(bucket, axes[1:], metrics, append(axisValues, bucket.Get("key").Value()), out)
		return true
	})
}

var gjsonPathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

// Axis and metric names contain dots that gjson would otherwise treat as
// path separators.
func escapeGjsonPath(key string) string {
	return gjsonPathEscaper.Replace(key)
}
