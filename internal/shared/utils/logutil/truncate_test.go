package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "printer jam", 20, "printer jam"},
		{"exact", "abc", 3, "abc"},
		{"cut", "the scanner is offline", 11, "the scanner..."},
		{"multibyte", "impresora dañada", 15, "impresora dañad..."},
		{"zero", "anything", 0, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}
