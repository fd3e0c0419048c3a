package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Interaction is one logged provider exchange: the user's message and the
// reply produced for it.
type Interaction struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	Message   string
	Response  string
	Topic     string
	Emotion   string
	Sentiment float64
}
