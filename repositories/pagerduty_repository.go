package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/models"
)

// PagerDutyEventsUrl is the enqueue endpoint of the Events API v2.
const PagerDutyEventsUrl = "https://events.pagerduty.com/v2/enqueue"

type PagerDutyRepository interface {
	EnqueueEvent(ctx context.Context, event models.PagerDutyEvent) error
}

type PagerDutyAPIRepository struct {
	enqueueUrl string
	routingKey string
	client     *http.Client
}

func NewPagerDutyAPIRepository(enqueueUrl, routingKey string, client *http.Client) *PagerDutyAPIRepository {
	if enqueueUrl == "" {
		enqueueUrl = PagerDutyEventsUrl
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &PagerDutyAPIRepository{
		enqueueUrl: enqueueUrl,
		routingKey: routingKey,
		client:     client,
	}
}

// EnqueueEvent posts one trigger or resolve event. Transport errors and
// retryable statuses (429, 5xx) are retried a few times; other rejections
// fail immediately and are left to the pending-deliveries job.
func (repo *PagerDutyAPIRepository) EnqueueEvent(ctx context.Context, event models.PagerDutyEvent) error {
	if event.RoutingKey == "" {
		event.RoutingKey = repo.routingKey
	}
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal pagerduty event")
	}

	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost,
				repo.enqueueUrl, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")

			res, err := repo.client.Do(req)
			if err != nil {
				return err
			}
			defer res.Body.Close()

			if res.StatusCode >= 200 && res.StatusCode < 300 {
				_, _ = io.Copy(io.Discard, res.Body)
				return nil
			}

			resBody, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
			if res.StatusCode >= 400 && res.StatusCode < 500 &&
				res.StatusCode != http.StatusTooManyRequests {
				return retry.Unrecoverable(errors.Wrap(models.ErrDeliveryRejected,
					fmt.Sprintf("status %d: %s", res.StatusCode, resBody)))
			}
			return errors.Newf("status %d: %s", res.StatusCode, resBody)
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(100*time.Millisecond),
		retry.Context(ctx),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to enqueue pagerduty %s event for %s",
			event.EventAction, event.DedupKey)
	}
	return nil
}
