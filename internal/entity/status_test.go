package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"pending", StatusPending},
		{"paid", StatusPaid},
		{"done", StatusDone},
		{"canceled", StatusCanceled},
		{"bogus", StatusPending},
		{"", StatusPending},
		{"PAID", StatusPending},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeStatus(tc.in), "input %q", tc.in)
	}
}

func TestFormatOrderID(t *testing.T) {
	assert.Equal(t, "NV00001", FormatOrderID(1))
	assert.Equal(t, "NV00042", FormatOrderID(42))
	assert.Equal(t, "NV123456", FormatOrderID(123456))
}
