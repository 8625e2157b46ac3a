package timezone

import "time"

const DefaultTimezone = "UTC"

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate parses a YYYY-MM-DD calendar date in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

// ParseSlot parses an HH:MM slot token and reports its minutes since
// midnight.
func ParseSlot(slot string) (int, error) {
	t, err := time.Parse(SlotLayout, slot)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
