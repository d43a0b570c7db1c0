package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexmorbo/slack-notifier/application/dto"
	"github.com/alexmorbo/slack-notifier/application/port"
	"github.com/alexmorbo/slack-notifier/domain/message"
	"github.com/alexmorbo/slack-notifier/domain/notification"
	"github.com/alexmorbo/slack-notifier/domain/recipient"
	"github.com/alexmorbo/slack-notifier/pkg/logger"
)

const maxUpstreamBody = 64 << 10

const (
	routeSourceRequest = "request"
	routeSourceStore   = "store"
	routeSourceStatic  = "static"
	routeSourceNone    = "none"
)

type SendNotificationUseCase struct {
	sender       port.SlackSender
	routeRepo    recipient.Repository
	staticRoutes port.StaticRoutes
	defaults     port.MessageDefaults
	allowlist    recipient.Allowlist
	logger       *slog.Logger
}

func NewSendNotificationUseCase(
	sender port.SlackSender,
	routeRepo recipient.Repository,
	staticRoutes port.StaticRoutes,
	defaults port.MessageDefaults,
	allowlist recipient.Allowlist,
	logger *slog.Logger,
) *SendNotificationUseCase {
	return &SendNotificationUseCase{
		sender:       sender,
		routeRepo:    routeRepo,
		staticRoutes: staticRoutes,
		defaults:     defaults,
		allowlist:    allowlist,
		logger:       logger,
	}
}

func (uc *SendNotificationUseCase) Execute(ctx context.Context, input dto.NotifyInput) (*dto.NotifyOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	msg, err := input.Message.ToMessage()
	if err != nil {
		return nil, err
	}

	route, source, err := uc.resolveRoute(ctx, input)
	if err != nil {
		return nil, err
	}
	routeSourceCounter(source).Inc()

	notifiable := recipientNotifiable{name: input.Recipient, route: route}
	n := slackNotification{msg: msg, defaults: uc.defaults}

	resp, err := uc.sender.Send(ctx, notifiable, n)
	if err != nil {
		uc.logger.Error("Notification delivery failed",
			logger.ApplicationFields("notification_failed",
				slog.String("request_id", logger.GetRequestID(ctx)),
				slog.String("recipient", input.Recipient),
				slog.String("route_source", source),
				slog.String("error", err.Error()),
			),
		)
		notificationsFailedCounter.Inc()
		return nil, fmt.Errorf("send notification: %w", err)
	}

	if resp == nil {
		uc.logger.Info("Notification skipped",
			logger.ApplicationFields("notification_skipped",
				slog.String("request_id", logger.GetRequestID(ctx)),
				slog.String("recipient", input.Recipient),
				slog.String("reason", "no_route"),
			),
		)
		notificationsSkippedCounter.Inc()
		return &dto.NotifyOutput{Status: dto.StatusSkipped}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("read slack response: %w", err)
	}

	mode := notification.RouteMode(route)
	out := &dto.NotifyOutput{
		Status:         dto.StatusSent,
		UpstreamStatus: resp.StatusCode,
	}
	if notification.IsToken(route) {
		out.UpstreamBody = string(body)
	}

	uc.logger.Info("Notification sent",
		logger.ApplicationFields("notification_sent",
			slog.String("request_id", logger.GetRequestID(ctx)),
			slog.String("recipient", input.Recipient),
			slog.String("route_source", source),
			slog.String("mode", mode),
			slog.Int("upstream_status", resp.StatusCode),
		),
	)
	notificationsSentCounter(mode).Inc()

	return out, nil
}

// resolveRoute prefers an explicit route, then the route store, then static
// configuration. An empty route is not an error. Caller-supplied routes,
// explicit or stored, must pass the allowlist; static routes are trusted.
func (uc *SendNotificationUseCase) resolveRoute(ctx context.Context, input dto.NotifyInput) (string, string, error) {
	if input.Route != "" {
		if err := uc.allowlist.Check(input.Route); err != nil {
			return "", "", fmt.Errorf("%w: %w", dto.ErrInvalidInput, err)
		}
		return input.Route, routeSourceRequest, nil
	}

	stored, err := uc.routeRepo.Find(ctx, input.Recipient)
	switch {
	case err == nil:
		if err := uc.allowlist.Check(stored.Value()); err != nil {
			return "", "", fmt.Errorf("%w: stored route for %q: %w", dto.ErrInvalidInput, input.Recipient, err)
		}
		return stored.Value(), routeSourceStore, nil
	case !errors.Is(err, recipient.ErrNotFound):
		return "", "", fmt.Errorf("%w: find route: %w", dto.ErrRouteUnavailable, err)
	}

	if route := uc.staticRoutes.RouteFor(input.Recipient); route != "" {
		return route, routeSourceStatic, nil
	}

	return "", routeSourceNone, nil
}

type recipientNotifiable struct {
	name  string
	route string
}

func (r recipientNotifiable) RouteNotificationFor(channel string, _ notification.Notification) string {
	if channel != notification.ChannelSlack {
		return ""
	}
	return r.route
}

type slackNotification struct {
	msg      message.Message
	defaults port.MessageDefaults
}

func (n slackNotification) ToSlack(notification.Notifiable) message.Message {
	msg := n.msg
	if msg.Username == "" {
		msg.Username = n.defaults.DefaultUsername()
	}
	if msg.Icon == "" {
		msg.Icon = n.defaults.DefaultIcon()
	}
	if msg.Channel == "" {
		msg.Channel = n.defaults.DefaultChannel()
	}
	return msg
}
