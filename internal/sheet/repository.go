package sheet

import (
	"context"
	"errors"
)

var (
	ErrQuestionOutOfRange        = errors.New("question number out of range")
	ErrInvalidOption             = errors.New("option is not part of the current alphabet")
	ErrInvalidOptionsPerQuestion = errors.New("options per question must be between 3 and 6")
	ErrAlreadyHydrated           = errors.New("sheet already hydrated")
)

// Durable storage keys.
const (
	KeyAnswers            = "examAnswers"
	KeyCorrectness        = "examCorrectness"
	KeyQuestionCount      = "examNumQuestions"
	KeyOptionsPerQuestion = "examOptionsPerQuestion"
)

// KVStore is the durable string key/value storage the sheet is persisted to.
// Load reports ok=false when the key holds no value.
type KVStore interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
