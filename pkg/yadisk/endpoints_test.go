package yadisk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1024, "1024.00 B"},
		{1536, "1.50 kB"},
		{5 * 1024 * 1024, "5.00 mB"},
		{3 * 1024 * 1024 * 1024, "3.00 gB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.00 tB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048.00 tB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "%d bytes", tt.bytes)
	}
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, "/Test/1.jpg", DisplayPath("disk:/Test/1.jpg"))
	assert.Equal(t, "/already/plain", DisplayPath("/already/plain"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "Test/1.jpg", Join("Test", "1.jpg"))
	assert.Equal(t, "Test/1.jpg", Join("Test/", "1.jpg"))
	assert.Equal(t, "1.jpg", Join("", "1.jpg"))
}
