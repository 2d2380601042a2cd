package currency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_USD(t *testing.T) {
	got := Format(1410.75, "USD")
	assert.True(t, strings.HasPrefix(got, "$"), "got %q", got)
	assert.Contains(t, got, "410.75")
}

func TestFormat_OtherISO(t *testing.T) {
	got := Format(99.5, "EUR")
	assert.Contains(t, got, "99.50")
}

func TestFormat_UnknownCode(t *testing.T) {
	assert.Equal(t, "ZZZ 12.50", Format(12.5, "ZZZ"))
}
