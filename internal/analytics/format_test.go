package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "∞", FormatRatio(math.Inf(1)))
	assert.Equal(t, "6.00", FormatRatio(6))
	assert.Equal(t, "0.33", FormatRatio(1.0/3))
	assert.Equal(t, "0.00", FormatRatio(math.NaN()))
}

func TestFormatCurrency(t *testing.T) {
	tests := map[float64]string{
		12.5:       "$12.50",
		1500:       "$1.50K",
		-2_500_000: "-$2.50M",
		0:          "$0.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCurrency(in))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[float64]string{
		5_000:      "5s",
		90_000:     "1m",
		3_660_000:  "1h 1m",
		90_000_000: "1d 1h",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDuration(in))
	}
}
