package message

import (
	"net/url"
	"time"
)

// HTTPOptions are merged over the request built for a message.
// Headers are merged per name; a non-zero Timeout replaces any other.
type HTTPOptions struct {
	Headers map[string]string
	Timeout time.Duration
}

type Message struct {
	Content     string
	Level       Level
	Channel     string
	Icon        string
	Username    string
	// LinkNames, UnfurlLinks and UnfurlMedia are sent whenever set, so an
	// explicit false reaches Slack; nil leaves the key out.
	LinkNames   *bool
	UnfurlLinks *bool
	UnfurlMedia *bool
	Attachments []Attachment
	HTTP        HTTPOptions
}

// Color is the default applied to attachments that carry none of their own.
func (m Message) Color() string {
	return m.Level.Color()
}

// IconURL reports the icon when it is an absolute http(s) URL.
func (m Message) IconURL() string {
	if isImageURL(m.Icon) {
		return m.Icon
	}
	return ""
}

// IconEmoji reports the icon when it is anything other than an image URL.
func (m Message) IconEmoji() string {
	if m.Icon == "" || isImageURL(m.Icon) {
		return ""
	}
	return m.Icon
}

func isImageURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func Bool(v bool) *bool {
	return &v
}
