package ingest

import (
	"log/slog"
	"strings"
	"time"

	"judicial_capture/internal/domain"
)

// CourtLocation is the location parsed dates are anchored to.
var CourtLocation = domain.CourtLocation

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ParseDate reads a court date leniently. Missing or unparseable values
// become nil and are logged; they never fail the record.
func ParseDate(logger *slog.Logger, field string, value *string) *time.Time {
	if value == nil {
		return nil
	}
	return ParseDateString(logger, field, *value)
}

func ParseDateString(logger *slog.Logger, field, value string) *time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, CourtLocation); err == nil {
			return &t
		}
	}

	logger.Warn("unparseable date, storing null", "field", field, "value", v)
	return nil
}
