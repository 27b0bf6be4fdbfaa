package handlers

import (
	"strconv"
	"time"
)

// parseDate accepts a date-only or RFC3339 value.
func parseDate(val string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseBoolQuery(val string) *bool {
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}
	return &parsed
}

func stringPtrOrNil(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}
