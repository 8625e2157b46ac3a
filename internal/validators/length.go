package validators

import (
	"fmt"
	"unicode/utf8"

	"github.com/BruksfildServices01/service-center/internal/httperr"
)

// Column widths of the free-text fields, in characters.
const (
	MaxServiceType      = 100
	MaxNotes            = 255
	MaxLaborDescription = 255
	MaxItemName         = 100
	MaxPartNumber       = 50
	MaxSupplier         = 100
	MaxUnit             = 20
	MaxFeedbackComment  = 1000
	MaxVehicleMake      = 60
	MaxVehicleModel     = 60
	MaxRegistration     = 20
)

// CheckLength rejects value when it holds more than limit characters.
func CheckLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) <= limit {
		return nil
	}
	return httperr.WithDetails(
		httperr.KindValidation,
		field+"_too_long",
		fmt.Sprintf("%s must be at most %d characters.", field, limit),
		map[string]any{"field": field, "max_length": limit},
	)
}
