package message

import "errors"

var ErrInvalidLevel = errors.New("invalid level")
