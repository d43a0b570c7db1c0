package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/alexmorbo/slack-notifier/domain/notification"
	"github.com/alexmorbo/slack-notifier/pkg/logger"
)

var (
	slackSkipped = metrics.NewCounter(`slack_api_calls_total{mode="none",status="skipped"}`)

	slackCallsCounter = func(mode, status string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`slack_api_calls_total{mode="` + mode + `",status="` + status + `"}`)
	}
	slackDurationHistogram = func(mode string) *metrics.Histogram {
		return metrics.GetOrCreateHistogram(`slack_api_duration_seconds{mode="` + mode + `"}`)
	}
)

// Channel delivers notifications to Slack webhooks or the chat.postMessage
// API. It holds no mutable state and is safe for concurrent use.
type Channel struct {
	httpClient *http.Client
	apiURL     string
	logger     *slog.Logger
}

func NewChannel(httpClient *http.Client, apiURL string, logger *slog.Logger) *Channel {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if apiURL == "" {
		apiURL = PostMessageURL
	}
	return &Channel{
		httpClient: httpClient,
		apiURL:     apiURL,
		logger:     logger,
	}
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Send posts the notification's Slack message to the notifiable's route.
// It returns nil, nil when the notifiable has no route. The response is
// returned as received, whatever its status; the caller must close its body.
func (c *Channel) Send(ctx context.Context, notifiable notification.Notifiable, n notification.Notification) (*http.Response, error) {
	route, ok := c.ResolveRoute(notifiable, n)
	if !ok {
		c.logger.Debug("Slack route not resolved, skipping",
			logger.ApplicationFields("slack_skipped", slog.String("reason", "no_route")),
		)
		slackSkipped.Inc()
		return nil, nil
	}

	return c.post(ctx, route, BuildRequest(n.ToSlack(notifiable), route.Token))
}

func (c *Channel) post(ctx context.Context, route Route, r Request) (*http.Response, error) {
	start := time.Now()
	mode := route.Mode()
	logURL := redactURL(route.URL)

	jsonBody, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal slack payload: %w", err)
	}

	cancel := context.CancelFunc(func() {})
	if r.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, route.URL, bytes.NewReader(jsonBody))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Bodies are always JSON.
	if r.Headers.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, values := range r.Headers {
		req.Header[name] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		duration := time.Since(start).Milliseconds()
		c.logger.Error("Slack post failed",
			logger.ExternalFieldsWithError("slack", logURL, "POST", 0, duration, err.Error()),
		)
		slackCallsCounter(mode, "error").Inc()
		return nil, fmt.Errorf("slack post: %w", err)
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}

	duration := time.Since(start).Milliseconds()
	c.logger.Debug("Slack post completed",
		logger.ExternalFields("slack", logURL, "POST", resp.StatusCode, duration),
	)
	slackCallsCounter(mode, "ok").Inc()
	slackDurationHistogram(mode).Update(float64(duration) / 1000)

	return resp, nil
}

// cancelOnClose releases a per-message timeout once the caller is done with
// the response body.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}

// redactURL keeps webhook secrets out of logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return u.Scheme + "://" + u.Host
}
