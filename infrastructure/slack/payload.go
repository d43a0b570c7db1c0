package slack

import (
	"net/http"
	"time"

	"github.com/alexmorbo/slack-notifier/domain/message"
)

// Request is everything needed to post a message except the destination.
type Request struct {
	Payload Payload
	Headers http.Header
	Timeout time.Duration
}

type Payload struct {
	Text        string           `json:"text"`
	Attachments []wireAttachment `json:"attachments"`
	Channel     string           `json:"channel,omitempty"`
	IconEmoji   string           `json:"icon_emoji,omitempty"`
	IconURL     string           `json:"icon_url,omitempty"`
	LinkNames   *bool            `json:"link_names,omitempty"`
	UnfurlLinks *bool            `json:"unfurl_links,omitempty"`
	UnfurlMedia *bool            `json:"unfurl_media,omitempty"`
	Username    string           `json:"username,omitempty"`
}

type wireAttachment struct {
	Actions    []message.Action `json:"actions,omitempty"`
	AuthorIcon string           `json:"author_icon,omitempty"`
	AuthorLink string           `json:"author_link,omitempty"`
	AuthorName string           `json:"author_name,omitempty"`
	Color      string           `json:"color,omitempty"`
	Fallback   string           `json:"fallback,omitempty"`
	Fields     []wireField      `json:"fields,omitempty"`
	Footer     string           `json:"footer,omitempty"`
	FooterIcon string           `json:"footer_icon,omitempty"`
	ImageURL   string           `json:"image_url,omitempty"`
	MarkdownIn []string         `json:"mrkdwn_in,omitempty"`
	Pretext    string           `json:"pretext,omitempty"`
	Text       string           `json:"text,omitempty"`
	ThumbURL   string           `json:"thumb_url,omitempty"`
	Title      string           `json:"title,omitempty"`
	TitleLink  string           `json:"title_link,omitempty"`
	TS         int64            `json:"ts,omitempty"`
}

type wireField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// BuildRequest formats msg for Slack. A non-empty token adds bearer auth;
// the message's own HTTP options are applied last and win on conflict.
func BuildRequest(msg message.Message, token string) Request {
	req := Request{
		Payload: Payload{
			Text:        msg.Content,
			Attachments: attachments(msg),
			Channel:     msg.Channel,
			IconEmoji:   msg.IconEmoji(),
			IconURL:     msg.IconURL(),
			LinkNames:   msg.LinkNames,
			UnfurlLinks: msg.UnfurlLinks,
			UnfurlMedia: msg.UnfurlMedia,
			Username:    msg.Username,
		},
		Headers: http.Header{},
	}

	if token != "" {
		req.Headers.Set("Content-Type", "application/json")
		req.Headers.Set("Authorization", "Bearer "+token)
	}

	for name, value := range msg.HTTP.Headers {
		req.Headers.Set(name, value)
	}
	if msg.HTTP.Timeout > 0 {
		req.Timeout = msg.HTTP.Timeout
	}

	return req
}

func attachments(msg message.Message) []wireAttachment {
	result := make([]wireAttachment, len(msg.Attachments))
	for i, a := range msg.Attachments {
		color := a.Color
		if color == "" {
			color = msg.Color()
		}

		var ts int64
		if !a.Timestamp.IsZero() {
			ts = a.Timestamp.Unix()
		}

		result[i] = wireAttachment{
			Actions:    a.Actions,
			AuthorIcon: a.AuthorIcon,
			AuthorLink: a.AuthorLink,
			AuthorName: a.AuthorName,
			Color:      color,
			Fallback:   a.Fallback,
			Fields:     fields(a),
			Footer:     a.Footer,
			FooterIcon: a.FooterIcon,
			ImageURL:   a.ImageURL,
			MarkdownIn: a.Markdown,
			Pretext:    a.Pretext,
			Text:       a.Content,
			ThumbURL:   a.ThumbURL,
			Title:      a.Title,
			TitleLink:  a.URL,
			TS:         ts,
		}
	}
	return result
}

func fields(a message.Attachment) []wireField {
	if len(a.Fields) == 0 {
		return nil
	}
	result := make([]wireField, len(a.Fields))
	for i, f := range a.Fields {
		if f.IsPair() {
			result[i] = wireField{Title: f.Title(), Value: f.Value(), Short: true}
			continue
		}
		result[i] = wireField{Title: f.Title(), Value: f.Value(), Short: f.Short()}
	}
	return result
}
