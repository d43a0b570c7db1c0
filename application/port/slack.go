package port

import (
	"context"
	"net/http"

	"github.com/alexmorbo/slack-notifier/domain/notification"
)

type SlackSender interface {
	Send(ctx context.Context, notifiable notification.Notifiable, n notification.Notification) (*http.Response, error)
}
