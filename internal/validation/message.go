package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"chirp/internal/models"
)

// ErrEmptyMessage is returned when a message has no visible content.
var ErrEmptyMessage = errors.New("message text cannot be empty")

// ValidateMessageText checks that message text is non-empty after trimming
// and within the length limit. Length is counted in runes so multi-byte
// characters are not penalized.
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return fmt.Errorf("message must not exceed %d characters", models.MaxMessageLength)
	}

	return nil
}
