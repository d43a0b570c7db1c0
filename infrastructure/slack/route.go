package slack

import "github.com/alexmorbo/slack-notifier/domain/notification"

const PostMessageURL = "https://slack.com/api/chat.postMessage"

type Route struct {
	URL   string
	Token string
}

func (r Route) IsToken() bool { return r.Token != "" }

func (r Route) Mode() string {
	return notification.RouteMode(r.Token)
}

// ParseRoute classifies a raw route. Tokens are posted to apiURL with bearer
// auth; anything else is used verbatim as the webhook URL.
func ParseRoute(raw, apiURL string) Route {
	if notification.IsToken(raw) {
		return Route{URL: apiURL, Token: raw}
	}
	return Route{URL: raw}
}

func (c *Channel) ResolveRoute(notifiable notification.Notifiable, n notification.Notification) (Route, bool) {
	raw := notifiable.RouteNotificationFor(notification.ChannelSlack, n)
	if raw == "" {
		return Route{}, false
	}
	return ParseRoute(raw, c.apiURL), true
}
