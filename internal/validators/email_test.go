package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmail(t *testing.T) {
	got, err := ParseEmail("  Parts Co <Orders@Parts.Example>  ")
	require.NoError(t, err)
	assert.Equal(t, "Orders@parts.example", got)

	for _, bad := range []string{"", "nobody", "a@", "@b.com", "two@@x.com"} {
		_, err := ParseEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, bad)
	}
}

func TestIsEmailDomainValid_RejectsMissingDomain(t *testing.T) {
	assert.False(t, IsEmailDomainValid("nobody"))
	assert.False(t, IsEmailDomainValid("nobody@"))
}
