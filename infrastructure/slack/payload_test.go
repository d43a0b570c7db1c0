package slack

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmorbo/slack-notifier/domain/message"
)

func payloadMap(t *testing.T, p Payload) map[string]any {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}

func TestBuildRequestMinimalMessage(t *testing.T) {
	req := BuildRequest(message.Message{}, "")

	result := payloadMap(t, req.Payload)
	assert.Len(t, result, 2)
	assert.Equal(t, "", result["text"])
	assert.Equal(t, []any{}, result["attachments"])
	assert.Empty(t, req.Headers)
	assert.Zero(t, req.Timeout)
}

func TestBuildRequestOptionalFields(t *testing.T) {
	msg := message.Message{
		Content:     "Deploy finished",
		Channel:     "#ops",
		Icon:        ":rocket:",
		Username:    "deploybot",
		LinkNames:   message.Bool(true),
		UnfurlLinks: message.Bool(false),
		UnfurlMedia: message.Bool(true),
	}

	result := payloadMap(t, BuildRequest(msg, "").Payload)

	assert.Equal(t, "Deploy finished", result["text"])
	assert.Equal(t, "#ops", result["channel"])
	assert.Equal(t, ":rocket:", result["icon_emoji"])
	assert.NotContains(t, result, "icon_url")
	assert.Equal(t, "deploybot", result["username"])
	assert.Equal(t, true, result["link_names"])
	assert.Equal(t, false, result["unfurl_links"])
	assert.Equal(t, true, result["unfurl_media"])
}

func TestBuildRequestIconURL(t *testing.T) {
	msg := message.Message{Icon: "https://example.com/bot.png"}

	result := payloadMap(t, BuildRequest(msg, "").Payload)

	assert.Equal(t, "https://example.com/bot.png", result["icon_url"])
	assert.NotContains(t, result, "icon_emoji")
}

func TestBuildRequestTokenHeaders(t *testing.T) {
	req := BuildRequest(message.Message{}, "xoxp-123")

	assert.Equal(t, "Bearer xoxp-123", req.Headers.Get("Authorization"))
	assert.Equal(t, "application/json", req.Headers.Get("Content-Type"))
}

func TestBuildRequestHTTPOverrides(t *testing.T) {
	t.Run("merged with token headers", func(t *testing.T) {
		msg := message.Message{
			HTTP: message.HTTPOptions{Headers: map[string]string{"X-Test": "1"}},
		}

		req := BuildRequest(msg, "xoxp-123")

		assert.Equal(t, "1", req.Headers.Get("X-Test"))
		assert.Equal(t, "Bearer xoxp-123", req.Headers.Get("Authorization"))
	})

	t.Run("override wins on conflict", func(t *testing.T) {
		msg := message.Message{
			HTTP: message.HTTPOptions{Headers: map[string]string{
				"authorization": "Bearer override",
				"Content-type":  "application/json; charset=utf-8",
			}},
		}

		req := BuildRequest(msg, "xoxp-123")

		assert.Equal(t, "Bearer override", req.Headers.Get("Authorization"))
		assert.Equal(t, "application/json; charset=utf-8", req.Headers.Get("Content-Type"))
		assert.Len(t, req.Headers, 2)
	})

	t.Run("timeout", func(t *testing.T) {
		msg := message.Message{HTTP: message.HTTPOptions{Timeout: 5 * time.Second}}

		req := BuildRequest(msg, "")

		assert.Equal(t, 5*time.Second, req.Timeout)
	})
}

func TestAttachmentsAllFields(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := message.Message{
		Attachments: []message.Attachment{
			{
				Title:      "Build #42",
				URL:        "https://ci.example.com/42",
				Pretext:    "New build",
				Content:    "All tests passed",
				Fallback:   "Build #42 passed",
				Color:      "#36a64f",
				AuthorName: "ci",
				AuthorLink: "https://ci.example.com",
				AuthorIcon: "https://ci.example.com/icon.png",
				Footer:     "CI",
				FooterIcon: "https://ci.example.com/footer.png",
				ImageURL:   "https://ci.example.com/graph.png",
				ThumbURL:   "https://ci.example.com/thumb.png",
				Timestamp:  ts,
				Markdown:   []string{"text", "pretext"},
				Fields:     []message.Field{message.NewField("Branch", "main")},
				Actions:    []message.Action{message.Button("Open", "https://ci.example.com/42", "primary")},
			},
		},
	}

	result := payloadMap(t, BuildRequest(msg, "").Payload)

	list, ok := result["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	a := list[0].(map[string]any)

	assert.Equal(t, "Build #42", a["title"])
	assert.Equal(t, "https://ci.example.com/42", a["title_link"])
	assert.Equal(t, "New build", a["pretext"])
	assert.Equal(t, "All tests passed", a["text"])
	assert.Equal(t, "Build #42 passed", a["fallback"])
	assert.Equal(t, "#36a64f", a["color"])
	assert.Equal(t, "ci", a["author_name"])
	assert.Equal(t, "https://ci.example.com", a["author_link"])
	assert.Equal(t, "https://ci.example.com/icon.png", a["author_icon"])
	assert.Equal(t, "CI", a["footer"])
	assert.Equal(t, "https://ci.example.com/footer.png", a["footer_icon"])
	assert.Equal(t, "https://ci.example.com/graph.png", a["image_url"])
	assert.Equal(t, "https://ci.example.com/thumb.png", a["thumb_url"])
	assert.Equal(t, float64(ts.Unix()), a["ts"])
	assert.Equal(t, []any{"text", "pretext"}, a["mrkdwn_in"])
	assert.Equal(t, []any{map[string]any{"title": "Branch", "value": "main", "short": true}}, a["fields"])
	assert.Equal(t, []any{map[string]any{
		"type":  "button",
		"text":  "Open",
		"url":   "https://ci.example.com/42",
		"style": "primary",
	}}, a["actions"])
}

func TestAttachmentsOmitAbsentValues(t *testing.T) {
	msg := message.Message{Attachments: []message.Attachment{{Title: "Only title"}}}

	result := payloadMap(t, BuildRequest(msg, "").Payload)

	a := result["attachments"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"title": "Only title"}, a)
}

func TestAttachmentColor(t *testing.T) {
	t.Run("own color wins over message level", func(t *testing.T) {
		msg := message.Message{
			Level:       message.LevelError,
			Attachments: []message.Attachment{{Color: "#123456"}},
		}
		got := attachments(msg)
		assert.Equal(t, "#123456", got[0].Color)
	})

	t.Run("own color used when message has none", func(t *testing.T) {
		msg := message.Message{Attachments: []message.Attachment{{Color: "#123456"}}}
		got := attachments(msg)
		assert.Equal(t, "#123456", got[0].Color)
	})

	t.Run("falls back to message level color", func(t *testing.T) {
		msg := message.Message{
			Level:       message.LevelWarning,
			Attachments: []message.Attachment{{Title: "a"}, {Title: "b", Color: "#000000"}},
		}
		got := attachments(msg)
		assert.Equal(t, "warning", got[0].Color)
		assert.Equal(t, "#000000", got[1].Color)
	})
}

func TestFieldsPreserveOrderAndNormalizePairs(t *testing.T) {
	a := message.Attachment{
		Fields: []message.Field{
			message.PairField("region", "eu-west-1"),
			message.NewField("Description", "disk almost full").Long(),
			message.PairField("host", "db-1"),
			message.NewField("Severity", "high"),
		},
	}

	got := fields(a)

	assert.Equal(t, []wireField{
		{Title: "region", Value: "eu-west-1", Short: true},
		{Title: "Description", Value: "disk almost full", Short: false},
		{Title: "host", Value: "db-1", Short: true},
		{Title: "Severity", Value: "high", Short: true},
	}, got)
}

func TestFieldsEmpty(t *testing.T) {
	assert.Nil(t, fields(message.Attachment{}))
}

func TestBuildRequestDoesNotMutateMessage(t *testing.T) {
	headers := map[string]string{"X-Test": "1"}
	msg := message.Message{
		Level:       message.LevelSuccess,
		HTTP:        message.HTTPOptions{Headers: headers},
		Attachments: []message.Attachment{{Title: "a"}},
	}

	_ = BuildRequest(msg, "xoxp-1")

	assert.Equal(t, map[string]string{"X-Test": "1"}, headers)
	assert.Empty(t, msg.Attachments[0].Color)
}
