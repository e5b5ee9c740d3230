package application

import (
	"errors"
	"strings"
	"time"
)

// ErrUnparseableTime reports a datetime string that matched none of the
// accepted local formats. The boundary decides what to do with it; typically
// it logs and leaves the field unset rather than rejecting the request.
var ErrUnparseableTime = errors.New("unparseable local datetime")

// Layouts accepted from datetime-local form inputs, with and without seconds.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseLocalDateTime parses an ISO-8601-like local timestamp. A single space
// in place of the 'T' separator is tolerated.
func ParseLocalDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseableTime
	}
	candidates := []string{s}
	if strings.Contains(s, " ") {
		candidates = append(candidates, strings.Replace(s, " ", "T", 1))
	}
	for _, c := range candidates {
		for _, layout := range localLayouts {
			if t, err := time.ParseInLocation(layout, c, time.Local); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, ErrUnparseableTime
}

// OptionalLocalDateTime maps an empty string to nil and a parse failure to
// (nil, ErrUnparseableTime), so callers get an explicit outcome instead of a
// silently swallowed error.
func OptionalLocalDateTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseLocalDateTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
