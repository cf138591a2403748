package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

const (
	DefaultMaxTitleLen   = 200
	DefaultMaxContentLen = 20000
)

// Text checks user supplied titles and bodies after they were sanitized.
// Lengths are counted in runes.
type Text struct {
	MaxTitleLen   int
	MaxContentLen int
}

func NewText() *Text {
	return &Text{MaxTitleLen: DefaultMaxTitleLen, MaxContentLen: DefaultMaxContentLen}
}

func (v *Text) Title(title string) error {
	return checkLength("Title", title, v.MaxTitleLen)
}

func (v *Text) Content(content string) error {
	return checkLength("Content", content, v.MaxContentLen)
}

func checkLength(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return internal_errors.Validation(field + " is empty")
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return internal_errors.Validation(fmt.Sprintf("%s is too long (max %d characters)", field, maxLen))
	}
	return nil
}
