// Package settings holds the off-peak policy and its settings snapshot.
package settings

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/service-center/internal/httperr"
)

var DefaultOffPeakDays = []string{"Monday", "Tuesday"}

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Snapshot is an immutable view of the settings taken at one point in time.
type Snapshot struct {
	offPeak map[time.Weekday]struct{}
}

// NewSnapshot builds a snapshot from stored day names. Names are expected to
// be canonical already; unknown ones are skipped.
func NewSnapshot(days []string) Snapshot {
	s := Snapshot{offPeak: make(map[time.Weekday]struct{}, len(days))}
	for _, d := range days {
		if wd, ok := weekdayByName[strings.ToLower(strings.TrimSpace(d))]; ok {
			s.offPeak[wd] = struct{}{}
		}
	}
	return s
}

func DefaultSnapshot() Snapshot {
	return NewSnapshot(DefaultOffPeakDays)
}

// OffPeakDays returns canonical day names in week order starting Sunday.
func (s Snapshot) OffPeakDays() []string {
	out := make([]string, 0, len(s.offPeak))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if _, ok := s.offPeak[wd]; ok {
			out = append(out, wd.String())
		}
	}
	return out
}

// IsOffPeak reports whether the calendar date falls on an off-peak weekday.
// Only the year, month and day of date are used.
func IsOffPeak(date time.Time, s Snapshot) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	_, ok := s.offPeak[day.Weekday()]
	return ok
}

// NormalizeDays validates admin input and returns canonical, de-duplicated
// weekday names.
func NormalizeDays(days []string) ([]string, error) {
	if days == nil {
		return nil, httperr.Validation("off_peak_days_required", "off_peak_days must be an array of weekday names.")
	}

	seen := make(map[time.Weekday]struct{}, len(days))
	for _, d := range days {
		wd, ok := weekdayByName[strings.ToLower(strings.TrimSpace(d))]
		if !ok {
			return nil, httperr.WithDetails(
				httperr.KindValidation,
				"invalid_weekday",
				"Unknown weekday name: "+d,
				map[string]any{"value": d},
			)
		}
		seen[wd] = struct{}{}
	}

	return Snapshot{offPeak: seen}.OffPeakDays(), nil
}
