package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/service-center/internal/httperr"
)

func TestNormalizeRegistration(t *testing.T) {
	assert.Equal(t, "AB-123", NormalizeRegistration("  ab-123 "))
	assert.Equal(t, "", NormalizeRegistration("   "))
}

func TestValidateYear(t *testing.T) {
	tests := []struct {
		year int
		ok   bool
	}{
		{1899, false},
		{1900, true},
		{2024, true},
		{2025, true},
		{2026, false},
	}
	for _, tt := range tests {
		err := ValidateYear(tt.year, 2024)
		if tt.ok {
			assert.NoError(t, err, "year %d", tt.year)
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "invalid_year"), "year %d", tt.year)
	}
}
