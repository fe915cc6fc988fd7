// Package pagerduty reads on-call schedule entries from the PagerDuty REST API.
package pagerduty

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout       = 10 * time.Second
	retryInitialInterval = 1 * time.Second
	retryMaxInterval     = 8 * time.Second
)

type scheduleResponse struct {
	Total   int         `json:"total"`
	Entries []entryJSON `json:"entries"`
	Error   *errorJSON  `json:"error"`
}

type entryJSON struct {
	User struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type errorJSON struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// statusError is a server-side failure without an error payload. It is retried.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.code, e.body)
}

type Option func(*Client)

// WithRetryInterval sets the first pause between attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) { c.retryInterval = d }
}

// WithMaxAttempts overrides the number of attempts before giving up.
func WithMaxAttempts(n uint) Option {
	return func(c *Client) { c.maxAttempts = n }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.SetTimeout(d)
		}
	}
}

// Client fetches schedule entries. It authenticates with basic auth when a
// user is given and with an API token otherwise.
type Client struct {
	client        *resty.Client
	retryInterval time.Duration
	maxAttempts   uint
}

var _ contract.ScheduleClient = (*Client)(nil)

func New(baseURL, user, token string, opts ...Option) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/vnd.pagerduty+json;version=2")
	if user != "" {
		client.SetBasicAuth(user, token)
	} else if token != "" {
		client.SetHeader("Authorization", "Token token="+token)
	}

	c := &Client{
		client:        client,
		retryInterval: retryInitialInterval,
		maxAttempts:   domain.MaxFetchAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchEntries returns the entries overlapping window, ordered by start.
// onFailure is called after every failed attempt, including the last one.
func (c *Client) FetchEntries(ctx context.Context, scheduleID string, window entity.TimeWindow, onFailure contract.FetchFailureFunc) (*entity.Schedule, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxInterval = retryMaxInterval

	path := fmt.Sprintf("/schedules/%s/entries", scheduleID)
	attempt := 0

	schedule, err := backoff.Retry(ctx, func() (*entity.Schedule, error) {
		attempt++
		logger.Debug(ctx, "Trying PagerDuty", "attempt", attempt, "path", path)

		schedule, err := c.fetch(ctx, path, window)
		if err == nil {
			return schedule, nil
		}

		var svcErr *domain.ServiceError
		if errors.As(err, &svcErr) {
			return nil, backoff.Permanent(err)
		}
		if onFailure != nil {
			onFailure(attempt, err)
		}
		return nil, err
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(c.maxAttempts))
	if err == nil {
		return schedule, nil
	}

	var svcErr *domain.ServiceError
	if errors.As(err, &svcErr) {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", domain.ErrScheduleUnavailable, attempt, err)
}

func (c *Client) fetch(ctx context.Context, path string, window entity.TimeWindow) (*entity.Schedule, error) {
	var payload scheduleResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"since":    window.Start.Format(domain.DefaultScheduleFormat),
			"until":    window.End.Format(domain.DefaultScheduleFormat),
			"overflow": "true",
		}).
		ForceContentType("application/json").
		SetResult(&payload).
		SetError(&payload).
		Get(path)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "PagerDuty response", "status", resp.StatusCode(), "body", resp.String())

	if payload.Error != nil {
		return nil, &domain.ServiceError{Message: payload.Error.Message, URL: resp.Request.URL}
	}
	if resp.StatusCode() >= http.StatusInternalServerError || resp.StatusCode() == http.StatusTooManyRequests {
		return nil, &statusError{code: resp.StatusCode(), body: resp.String()}
	}
	if resp.IsError() {
		return nil, &domain.ServiceError{Message: resp.Status(), URL: resp.Request.URL}
	}

	schedule, err := toSchedule(payload)
	if err != nil {
		// Malformed entries are not retried.
		return nil, &domain.ServiceError{Message: err.Error(), URL: resp.Request.URL}
	}
	return schedule, nil
}

func toSchedule(payload scheduleResponse) (*entity.Schedule, error) {
	schedule := &entity.Schedule{Total: payload.Total}
	for _, e := range payload.Entries {
		start, err := parseTime(e.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start of %s: %w", e.User.Name, err)
		}
		end, err := parseTime(e.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end of %s: %w", e.User.Name, err)
		}
		schedule.Entries = append(schedule.Entries, entity.ScheduleEntry{
			PersonName: e.User.Name,
			PersonID:   e.User.ID,
			Start:      start,
			End:        end,
		})
	}

	slices.SortStableFunc(schedule.Entries, func(a, b entity.ScheduleEntry) int {
		return a.Start.Compare(b.Start)
	})
	return schedule, nil
}

func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(domain.DefaultScheduleFormat, value)
}
