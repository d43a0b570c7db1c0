package message

import "strings"

type Level struct {
	value string
}

var (
	LevelInfo    = Level{value: "info"}
	LevelSuccess = Level{value: "success"}
	LevelWarning = Level{value: "warning"}
	LevelError   = Level{value: "error"}
)

func NewLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return LevelInfo, nil
	case "success":
		return LevelSuccess, nil
	case "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return Level{}, ErrInvalidLevel
	}
}

func (l Level) String() string {
	if l.value == "" {
		return LevelInfo.value
	}
	return l.value
}

// Color maps the level to a Slack attachment color. Info has no color.
func (l Level) Color() string {
	switch l {
	case LevelSuccess:
		return "good"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "danger"
	default:
		return ""
	}
}
