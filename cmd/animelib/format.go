package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func intOrDash(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

func scoreOrDash(value *float64) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// airedDate trims a catalog timestamp down to its date.
func airedDate(value *string) string {
	if value == nil || *value == "" {
		return "?"
	}
	if len(*value) >= 10 {
		return (*value)[:10]
	}
	return *value
}

// relativeTime renders a SQLite CURRENT_TIMESTAMP value as "3 days ago".
func relativeTime(value string, now time.Time) string {
	ts, err := time.Parse(time.DateTime, strings.TrimSpace(value))
	if err != nil {
		if ts, err = time.Parse(time.RFC3339, strings.TrimSpace(value)); err != nil {
			return orDash(value)
		}
	}
	return humanize.RelTime(ts, now, "ago", "from now")
}
