package notification

import (
	"strings"

	"github.com/alexmorbo/slack-notifier/domain/message"
)

const (
	// ChannelSlack is the channel key notifiables are asked to route for.
	ChannelSlack = "slack"

	// TokenPrefix marks routes that are user tokens rather than webhook URLs.
	// The match is case-sensitive.
	TokenPrefix = "xoxp"
)

type Notifiable interface {
	// RouteNotificationFor returns the destination for the channel, or an
	// empty string when the notifiable has none.
	RouteNotificationFor(channel string, n Notification) string
}

type Notification interface {
	ToSlack(n Notifiable) message.Message
}

func IsToken(route string) bool {
	return strings.HasPrefix(route, TokenPrefix)
}

// RouteMode names the delivery mode of a route for logs, metrics and API
// responses: "token" or "webhook".
func RouteMode(route string) string {
	if IsToken(route) {
		return "token"
	}
	return "webhook"
}
