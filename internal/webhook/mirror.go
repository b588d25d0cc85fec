package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultMirrorTimeout = 10 * time.Second

// Event is the payload mirrored for every delivered notification.
type Event struct {
	ReminderID  string `json:"reminderId"`
	Comment     string `json:"comment"`
	Phone       string `json:"phone"`
	NextAttempt string `json:"nextAttempt"`
	Kind        string `json:"kind"`
}

// Mirror POSTs delivered notifications to an external endpoint, best effort.
// Losing a mirror call never affects the poll result; the reminder is
// already marked notified by then.
type Mirror struct {
	client   *resty.Client
	endpoint string
}

func NewMirror(endpoint string) (*Mirror, error) {
	client := resty.New()
	client.SetTimeout(defaultMirrorTimeout)
	client.SetRetryCount(0)

	return NewMirrorWithClient(endpoint, client)
}

func NewMirrorWithClient(endpoint string, client *resty.Client) (*Mirror, error) {
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedEndpoint == "" {
		return nil, fmt.Errorf("mirror endpoint is required")
	}
	if _, err := url.ParseRequestURI(trimmedEndpoint); err != nil {
		return nil, fmt.Errorf("invalid mirror endpoint: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultMirrorTimeout)
	}
	client.SetRetryCount(0)

	return &Mirror{
		client:   client,
		endpoint: trimmedEndpoint,
	}, nil
}

// Forward delivers one event. Non-2xx responses and transport failures are
// returned as MirrorError with a transient classification.
func (m *Mirror) Forward(ctx context.Context, event Event) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("mirror is not initialized")
	}

	response, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(m.endpoint)
	if err != nil {
		return &MirrorError{
			Message:   "mirror request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}

	statusCode := response.StatusCode()
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return nil
	}

	return &MirrorError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("mirror returned status %d", statusCode),
		Transient:  isTransientHTTPStatus(statusCode),
	}
}

func isTransientHTTPStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || (statusCode >= http.StatusInternalServerError && statusCode <= 599)
}
