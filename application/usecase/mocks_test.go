package usecase

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alexmorbo/slack-notifier/domain/message"
	"github.com/alexmorbo/slack-notifier/domain/notification"
	"github.com/alexmorbo/slack-notifier/domain/recipient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockSender struct {
	mu         sync.Mutex
	calls      int
	route      string
	msg        message.Message
	statusCode int
	body       string
	err        error
}

func (m *mockSender) Send(_ context.Context, notifiable notification.Notifiable, n notification.Notification) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.route = notifiable.RouteNotificationFor(notification.ChannelSlack, n)
	m.msg = n.ToSlack(notifiable)

	if m.err != nil {
		return nil, m.err
	}
	if m.route == "" {
		return nil, nil
	}

	status := m.statusCode
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(m.body)),
	}, nil
}

type mockRouteRepository struct {
	mu        sync.Mutex
	routes    map[string]*recipient.Route
	findErr   error
	saveErr   error
	deleteErr error
}

func newMockRouteRepository() *mockRouteRepository {
	return &mockRouteRepository{routes: make(map[string]*recipient.Route)}
}

func (m *mockRouteRepository) Save(_ context.Context, r *recipient.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.routes[r.Recipient()] = r
	return nil
}

func (m *mockRouteRepository) Find(_ context.Context, name string) (*recipient.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	r, ok := m.routes[name]
	if !ok {
		return nil, recipient.ErrNotFound
	}
	return r, nil
}

func (m *mockRouteRepository) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.routes[name]; !ok {
		return recipient.ErrNotFound
	}
	delete(m.routes, name)
	return nil
}

func (m *mockRouteRepository) put(name, value string) {
	m.routes[name] = recipient.RestoreRoute(name, value, time.Now())
}

type mockDirectory struct {
	routes   map[string]string
	username string
	icon     string
	channel  string
}

func (m *mockDirectory) RouteFor(name string) string { return m.routes[name] }
func (m *mockDirectory) DefaultUsername() string     { return m.username }
func (m *mockDirectory) DefaultIcon() string         { return m.icon }
func (m *mockDirectory) DefaultChannel() string      { return m.channel }
