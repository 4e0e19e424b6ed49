package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$249.00", FormatCents(24900))
	assert.Equal(t, "$0.99", FormatCents(99))
	assert.Equal(t, "$0.00", FormatCents(0))
	assert.Equal(t, "$1250.50", FormatCents(125050))
}

func TestLineTotalCents(t *testing.T) {
	assert.Equal(t, 49800, LineTotalCents(24900, 2))
	assert.Equal(t, 0, LineTotalCents(24900, 0))
}
