package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
	"github.com/offkey/offkey/repositories/clock"
	"github.com/offkey/offkey/utils"
)

type MonitorEvaluationUsecase struct {
	executorGetter     executorGetter
	alertRepository    repositories.AlertRepository
	deliveryRepository repositories.DeliveryRepository
	metricsRepository  repositories.MetricsRepository
	deliveryUsecase    DeliveryUsecase
	clock              clock.Clock
	telemetry          *infra.Telemetry
	// statusCache remembers the last known status per dedup key, to skip the
	// resolve query for series that are already quiet.
	statusCache *lru.Cache[string, models.AlertStatus]
}

// EvaluateMonitor runs one evaluation pass: it aggregates the monitor's
// metrics over the trailing window, checks every series point against its
// threshold ladder, and triggers or resolves the matching alerts. With dryRun
// set, nothing is persisted or delivered and only the decisions are returned.
func (usecase MonitorEvaluationUsecase) EvaluateMonitor(
	ctx context.Context,
	monitor models.Monitor,
	dryRun bool,
) ([]models.EvaluationDecision, error) {
	logger := utils.LoggerFromContext(ctx)
	start := time.Now()
	endTime := usecase.clock.Now()

	points, err := usecase.metricsRepository.QuerySeries(ctx, monitor, endTime)
	if err != nil {
		usecase.telemetry.EvaluationsTotal.WithLabelValues(monitor.Name, "error").Inc()
		return nil, errors.Wrapf(err, "monitor '%s': failed to query series", monitor.Name)
	}
	usecase.telemetry.SeriesPointsQueried.
		WithLabelValues(monitor.Name).Add(float64(len(points)))

	allAxes := monitor.AllAxes()
	decisions := make([]models.EvaluationDecision, 0, len(points))
	for _, point := range points {
		// A bucket response missing axis values would mis-key the series.
		if len(point.AxisValues) < len(allAxes) {
			logger.WarnContext(ctx, fmt.Sprintf(
				"monitor '%s': skipping point with %d of %d axis values",
				monitor.Name, len(point.AxisValues), len(allAxes)))
			continue
		}

		identity := alertIdentity(monitor, point)
		dedupKey := identity.DedupKey()

		thresholds := monitor.Metrics[point.Metric]
		breach := thresholds.Check(point.Value)

		decision := models.EvaluationDecision{
			DedupKey: dedupKey,
			Metric:   identity.Metric,
			Axes:     identity.AxesMap(),
			Value:    point.Value,
			Action:   models.EvaluationActionNone,
		}

		if breach != nil {
			decision.Action = models.EvaluationActionTriggered
			decision.Severity = breach.Severity
			decision.Diagnostic = breach.Diagnostic
			if !dryRun {
				if err := usecase.trigger(ctx, monitor, identity, point, *breach, endTime); err != nil {
					usecase.telemetry.EvaluationsTotal.WithLabelValues(monitor.Name, "error").Inc()
					return nil, err
				}
			}
		} else if !dryRun {
			resolved, err := usecase.resolve(ctx, monitor, dedupKey, endTime)
			if err != nil {
				usecase.telemetry.EvaluationsTotal.WithLabelValues(monitor.Name, "error").Inc()
				return nil, err
			}
			if resolved {
				decision.Action = models.EvaluationActionResolved
			}
		}
		decisions = append(decisions, decision)
	}

	usecase.telemetry.EvaluationsTotal.WithLabelValues(monitor.Name, "ok").Inc()
	usecase.telemetry.EvaluationDuration.
		WithLabelValues(monitor.Name).Observe(time.Since(start).Seconds())
	logger.DebugContext(ctx, fmt.Sprintf(
		"monitor '%s': evaluated %d series points", monitor.Name, len(points)))
	return decisions, nil
}

func (usecase MonitorEvaluationUsecase) trigger(
	ctx context.Context,
	monitor models.Monitor,
	identity models.AlertIdentity,
	point models.SeriesPoint,
	breach models.ThresholdBreach,
	at time.Time,
) error {
	logger := utils.LoggerFromContext(ctx)
	dedupKey := identity.DedupKey()
	thresholds := monitor.Metrics[point.Metric]

	payload := buildTriggerPayload(identity, point, breach, thresholds.Message, at)

	var delivery models.AlertDelivery
	err := usecase.executorGetter.Transaction(ctx, func(tx repositories.Executor) error {
		alert, err := usecase.alertRepository.UpsertTriggeredAlert(ctx, tx, models.AlertUpsert{
			DedupKey:    dedupKey,
			MonitorName: monitor.Name,
			Metric:      identity.Metric,
			Axes:        identity.AxesMap(),
			Severity:    breach.Severity,
			Value:       point.Value,
			Diagnostic:  breach.Diagnostic,
			Message:     thresholds.Message,
		}, uuid.NewString(), at)
		if err != nil {
			return err
		}

		delivery, err = usecase.deliveryRepository.EnqueueDelivery(ctx, tx, models.AlertDeliveryCreate{
			AlertId:     alert.Id,
			DedupKey:    dedupKey,
			EventAction: models.EventActionTrigger,
			Payload:     &payload,
		}, uuid.NewString())
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "monitor '%s': failed to record triggered alert", monitor.Name)
	}

	usecase.statusCache.Add(dedupKey, models.AlertStatusTriggered)
	usecase.telemetry.AlertsTriggered.
		WithLabelValues(monitor.Name, string(breach.Severity)).Inc()
	logger.InfoContext(ctx, fmt.Sprintf(
		"monitor '%s': %s alert on %s (%s)",
		monitor.Name, breach.Severity, payload.Source, breach.Diagnostic))

	// Best effort: the pending-deliveries job picks up what could not be sent.
	if err := usecase.deliveryUsecase.Dispatch(ctx, delivery); err != nil {
		logger.WarnContext(ctx, fmt.Sprintf(
			"monitor '%s': failed to deliver trigger event: %v", monitor.Name, err))
	}
	return nil
}

// resolve sends a resolve event for the series, but only when an alert is
// currently triggered on it. It reports whether an alert was resolved.
func (usecase MonitorEvaluationUsecase) resolve(
	ctx context.Context,
	monitor models.Monitor,
	dedupKey string,
	at time.Time,
) (bool, error) {
	logger := utils.LoggerFromContext(ctx)

	if status, ok := usecase.statusCache.Get(dedupKey); ok && status == models.AlertStatusResolved {
		return false, nil
	}

	var alert *models.Alert
	var delivery models.AlertDelivery
	err := usecase.executorGetter.Transaction(ctx, func(tx repositories.Executor) error {
		var err error
		alert, err = usecase.alertRepository.ResolveAlert(ctx, tx, dedupKey, at)
		if err != nil || alert == nil {
			return err
		}
		delivery, err = usecase.deliveryRepository.EnqueueDelivery(ctx, tx, models.AlertDeliveryCreate{
			AlertId:     alert.Id,
			DedupKey:    dedupKey,
			EventAction: models.EventActionResolve,
		}, uuid.NewString())
		return err
	})
	if err != nil {
		return false, errors.Wrapf(err, "monitor '%s': failed to resolve alert", monitor.Name)
	}

	usecase.statusCache.Add(dedupKey, models.AlertStatusResolved)
	if alert == nil {
		return false, nil
	}

	usecase.telemetry.AlertsResolved.WithLabelValues(monitor.Name).Inc()
	logger.InfoContext(ctx, fmt.Sprintf(
		"monitor '%s': resolved alert on %s", monitor.Name, alert.Metric))

	if err := usecase.deliveryUsecase.Dispatch(ctx, delivery); err != nil {
		logger.WarnContext(ctx, fmt.Sprintf(
			"monitor '%s': failed to deliver resolve event: %v", monitor.Name, err))
	}
	return true, nil
}

// alertIdentity maps a tabulated series point onto the stable identity of its
// alerting series. Axis values are positional: host axes first, then the
// monitor's extra axes, in bucketing order. The point must carry a value for
// every axis.
func alertIdentity(monitor models.Monitor, point models.SeriesPoint) models.AlertIdentity {
	identity := models.AlertIdentity{
		Metric: monitor.FullFieldName(models.ParseMetricSpec(point.Metric).Name),
	}
	for i, axis := range monitor.AllAxes() {
		item := models.AxisItem{Key: monitor.FullFieldName(axis), Value: point.AxisValues[i]}
		if i < len(models.HostAxes) {
			identity.HostAxes = append(identity.HostAxes, item)
		} else {
			identity.MonitorAxes = append(identity.MonitorAxes, item)
		}
	}
	return identity
}

func buildTriggerPayload(
	identity models.AlertIdentity,
	point models.SeriesPoint,
	breach models.ThresholdBreach,
	message string,
	at time.Time,
) models.PagerDutyPayload {
	if message == "" {
		message = "Metric out of range"
	}
	details := identity.CustomDetails()
	details[identity.Metric] = point.Value
	return models.PagerDutyPayload{
		Summary:       fmt.Sprintf("%s: %s %s", message, identity.Metric, breach.Diagnostic),
		Source:        identity.Source(),
		Severity:      breach.Severity,
		Timestamp:     at.UTC().Format(time.RFC3339),
		Component:     identity.Component(),
		Class:         message,
		CustomDetails: details,
	}
}
