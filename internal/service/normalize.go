package service

import (
	"strings"
	"time"

	"evtrips/internal/domain"
)

// NormalizeEnum canonicalizes a free-text enum value: trim, uppercase,
// spaces and hyphens collapsed to underscores.
func NormalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// normalizeBodyType canonicalizes and validates a body type.
func normalizeBodyType(s string) (domain.BodyType, error) {
	b := domain.BodyType(NormalizeEnum(s))
	if !b.Valid() {
		return "", ErrInvalidBodyType
	}
	return b, nil
}

// normalizeSegment canonicalizes and validates a segment.
func normalizeSegment(s string) (domain.Segment, error) {
	seg := domain.Segment(NormalizeEnum(s))
	if !seg.Valid() {
		return "", ErrInvalidSegment
	}
	return seg, nil
}

// normalizeChargingType canonicalizes and validates a charging type.
func normalizeChargingType(s string) (domain.ChargingType, error) {
	c := domain.ChargingType(NormalizeEnum(s))
	if !c.Valid() {
		return "", ErrInvalidChargingType
	}
	return c, nil
}

// Accepted trip date layouts: ISO date first, then the European day-first
// form used by the source CSVs.
var tripDateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseTripDate parses a trip date in either YYYY-MM-DD or DD/MM/YYYY form
// and truncates it to UTC midnight.
func ParseTripDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingTripDate
	}

	for _, layout := range tripDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, ErrInvalidTripDate
}
