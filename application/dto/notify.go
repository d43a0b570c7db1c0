package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexmorbo/slack-notifier/domain/message"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrRouteUnavailable = errors.New("route store unavailable")
)

type NotifyInput struct {
	Recipient string       `json:"recipient"`
	Route     string       `json:"route"`
	Message   MessageInput `json:"message"`
}

type MessageInput struct {
	Content     string            `json:"content"`
	Level       string            `json:"level"`
	Channel     string            `json:"channel"`
	Icon        string            `json:"icon"`
	Username    string            `json:"username"`
	LinkNames   *bool             `json:"link_names"`
	UnfurlLinks *bool             `json:"unfurl_links"`
	UnfurlMedia *bool             `json:"unfurl_media"`
	Attachments []AttachmentInput `json:"attachments"`
	HTTP        *HTTPInput        `json:"http"`
}

type AttachmentInput struct {
	Title      string           `json:"title"`
	TitleLink  string           `json:"title_link"`
	Pretext    string           `json:"pretext"`
	Text       string           `json:"text"`
	Fallback   string           `json:"fallback"`
	Color      string           `json:"color"`
	AuthorName string           `json:"author_name"`
	AuthorLink string           `json:"author_link"`
	AuthorIcon string           `json:"author_icon"`
	Footer     string           `json:"footer"`
	FooterIcon string           `json:"footer_icon"`
	ImageURL   string           `json:"image_url"`
	ThumbURL   string           `json:"thumb_url"`
	Timestamp  int64            `json:"ts"`
	MarkdownIn []string         `json:"mrkdwn_in"`
	Fields     []FieldInput     `json:"fields"`
	Actions    []map[string]any `json:"actions"`
}

// FieldInput without an explicit short flag is taken as a plain key/value pair.
type FieldInput struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short *bool  `json:"short"`
}

type HTTPInput struct {
	Headers map[string]string `json:"headers"`
	Timeout string            `json:"timeout"`
}

// NotifyOutput carries the upstream body only for token routes, whose
// destination is the configured API URL.
type NotifyOutput struct {
	Status         string `json:"status"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
}

const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
)

func (in NotifyInput) Validate() error {
	if in.Recipient == "" && in.Route == "" {
		return fmt.Errorf("%w: recipient or route is required", ErrInvalidInput)
	}
	return nil
}

func (m MessageInput) ToMessage() (message.Message, error) {
	level, err := message.NewLevel(m.Level)
	if err != nil {
		return message.Message{}, fmt.Errorf("%w: level %q: %w", ErrInvalidInput, m.Level, err)
	}

	msg := message.Message{
		Content:     m.Content,
		Level:       level,
		Channel:     m.Channel,
		Icon:        m.Icon,
		Username:    m.Username,
		LinkNames:   m.LinkNames,
		UnfurlLinks: m.UnfurlLinks,
		UnfurlMedia: m.UnfurlMedia,
	}

	if m.HTTP != nil {
		msg.HTTP.Headers = m.HTTP.Headers
		if m.HTTP.Timeout != "" {
			d, err := time.ParseDuration(m.HTTP.Timeout)
			if err != nil || d <= 0 {
				return message.Message{}, fmt.Errorf("%w: http timeout %q", ErrInvalidInput, m.HTTP.Timeout)
			}
			msg.HTTP.Timeout = d
		}
	}

	for _, a := range m.Attachments {
		msg.Attachments = append(msg.Attachments, a.toAttachment())
	}

	return msg, nil
}

func (a AttachmentInput) toAttachment() message.Attachment {
	attachment := message.Attachment{
		Title:      a.Title,
		URL:        a.TitleLink,
		Pretext:    a.Pretext,
		Content:    a.Text,
		Fallback:   a.Fallback,
		Color:      a.Color,
		AuthorName: a.AuthorName,
		AuthorLink: a.AuthorLink,
		AuthorIcon: a.AuthorIcon,
		Footer:     a.Footer,
		FooterIcon: a.FooterIcon,
		ImageURL:   a.ImageURL,
		ThumbURL:   a.ThumbURL,
		Markdown:   a.MarkdownIn,
	}

	if a.Timestamp > 0 {
		attachment.Timestamp = time.Unix(a.Timestamp, 0).UTC()
	}

	for _, f := range a.Fields {
		attachment.Fields = append(attachment.Fields, f.toField())
	}

	for _, action := range a.Actions {
		attachment.Actions = append(attachment.Actions, message.Action(action))
	}

	return attachment
}

func (f FieldInput) toField() message.Field {
	switch {
	case f.Short == nil:
		return message.PairField(f.Title, f.Value)
	case *f.Short:
		return message.NewField(f.Title, f.Value)
	default:
		return message.NewField(f.Title, f.Value).Long()
	}
}
