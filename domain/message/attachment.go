package message

import "time"

// Action is an interactive attachment element. Its content is forwarded to
// Slack untouched.
type Action map[string]any

func Button(text, url, style string) Action {
	a := Action{
		"type": "button",
		"text": text,
		"url":  url,
	}
	if style != "" {
		a["style"] = style
	}
	return a
}

type Attachment struct {
	Title      string
	URL        string
	Pretext    string
	Content    string
	Fallback   string
	Color      string
	AuthorName string
	AuthorLink string
	AuthorIcon string
	Footer     string
	FooterIcon string
	ImageURL   string
	ThumbURL   string
	Timestamp  time.Time
	Markdown   []string
	Fields     []Field
	Actions    []Action
}
