package player

import (
	"strings"
	"unicode"
)

// Status is the normalized availability of a player.
type Status string

const (
	StatusActive    Status = "active"
	StatusInjured   Status = "injured"
	StatusBye       Status = "bye"
	StatusSuspended Status = "suspended"
)

// NormalizeStatus maps free-text provider statuses onto Status. It never
// fails: anything without a recognised keyword is active.
//
// "injur", "bye" and "suspen" match as substrings. "ir" and "out" are short
// enough to appear inside unrelated words, so they only match as whole tokens.
func NormalizeStatus(raw string) Status {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return StatusActive
	}

	if strings.Contains(value, "injur") {
		return StatusInjured
	}

	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		switch token {
		case "ir", "out", "injured":
			return StatusInjured
		}
	}

	switch {
	case strings.Contains(value, "bye"):
		return StatusBye
	case strings.Contains(value, "suspen"):
		return StatusSuspended
	default:
		return StatusActive
	}
}
