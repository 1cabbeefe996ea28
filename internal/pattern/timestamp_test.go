package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTimestampLike(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		// embedded timestamps with assorted separators
		{"backup_20240115_1430.zip", true},
		{"2024-01-15_14-30.log", true},
		{"snap2024011514.dat", true},

		// plain names
		{"report.pdf", false},
		{"notes.txt", false},
		{"", false},

		// year boundaries: [1970, 2050] inclusive
		{"1970010100", true},
		{"2050010100", true},
		{"1969010100", false},
		{"2051010100", false},

		// month, day and hour out of range
		{"2024130100", false}, // month 13
		{"2024013200", false}, // day 32
		{"2024010124", false}, // hour 24

		// calendar validity is not checked
		{"2024023010", true}, // Feb 30

		// a double separator breaks the sequence
		{"2024--01-15-14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTimestampLike(tt.name), "name %q", tt.name)
		})
	}
}
