package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBuiltin(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"fs", true},
		{"node:fs", true},
		{"fs/promises", true},
		{"node:stream/web", true},
		{"path", true},
		{"lodash", false},
		{"./fs", false},
		{"node:not-a-module", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBuiltin(tt.ref), "ref %q", tt.ref)
	}
}
