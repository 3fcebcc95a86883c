package helper

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"axflo_backend/internals/configs"
)

// LeadEvent is posted to the lead webhook when a visitor leaves contact
// details (contact form, job application).
type LeadEvent struct {
	Kind      string         `json:"kind"`
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Summary   string         `json:"summary"`
	Extra     map[string]any `json:"extra,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// LeadNotifier delivers LeadEvents. Delivery is best-effort.
type LeadNotifier interface {
	Notify(ctx context.Context, ev LeadEvent)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, LeadEvent) {}

const (
	webhookTimeout   = 3 * time.Second
	webhookRetryWait = 500 * time.Millisecond
)

type webhookNotifier struct {
	client *resty.Client
	url    string
}

// NewLeadNotifier returns a no-op notifier when url is empty.
func NewLeadNotifier(url string) LeadNotifier {
	url = strings.TrimSpace(url)
	if url == "" {
		return noopNotifier{}
	}
	client := resty.New().
		SetTimeout(webhookTimeout).
		SetRetryCount(1).
		SetRetryWaitTime(webhookRetryWait).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &webhookNotifier{client: client, url: url}
}

func (w *webhookNotifier) Notify(ctx context.Context, ev LeadEvent) {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(ev).
		Post(w.url)
	if err != nil {
		configs.Log().Warn("lead webhook failed", zap.String("kind", ev.Kind), zap.Error(err))
		return
	}
	if resp.IsError() {
		configs.Log().Warn("lead webhook rejected",
			zap.String("kind", ev.Kind),
			zap.Int("status_code", resp.StatusCode()),
		)
	}
}

// NotifyAsync detaches from the request so the caller is never blocked.
func NotifyAsync(n LeadNotifier, ev LeadEvent) {
	if n == nil {
		return
	}
	if _, ok := n.(noopNotifier); ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		n.Notify(ctx, ev)
	}()
}
