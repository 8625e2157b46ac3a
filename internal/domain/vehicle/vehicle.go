// Package vehicle holds the rules for the vehicles customers book against.
package vehicle

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/service-center/internal/httperr"
)

const MinYear = 1900

// NormalizeRegistration trims the number and upper-cases it so "ab-123"
// and " AB-123" name the same vehicle.
func NormalizeRegistration(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateYear accepts model years up to one past currentYear.
func ValidateYear(year, currentYear int) error {
	if year < MinYear || year > currentYear+1 {
		return httperr.WithDetails(
			httperr.KindValidation,
			"invalid_year",
			fmt.Sprintf("Year must be between %d and %d.", MinYear, currentYear+1),
			map[string]any{"min": MinYear, "max": currentYear + 1},
		)
	}
	return nil
}

func InUse() error {
	return httperr.Conflict("vehicle_in_use", "Vehicle has appointments that are not canceled.")
}

func NotOwner() error {
	return httperr.UnauthorizedErr("not_vehicle_owner", "Vehicle does not belong to the caller.")
}
