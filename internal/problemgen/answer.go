package problemgen

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotANumber is returned when an answer cannot be parsed as an integer.
var ErrNotANumber = errors.New("answer is not an integer")

// ParseAnswer parses the learner's input as a base-10 integer.
// Surrounding whitespace and a leading plus sign are accepted.
func ParseAnswer(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrNotANumber
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}
