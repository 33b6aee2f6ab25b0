package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		total       int
		wantIndex   int
		wantWrapped bool
	}{
		{name: "start", index: 0, total: 3, wantIndex: 0},
		{name: "middle", index: 1, total: 3, wantIndex: 1},
		{name: "last", index: 2, total: 3, wantIndex: 2},
		{name: "exactly total", index: 3, total: 3, wantIndex: 0, wantWrapped: true},
		{name: "past total", index: 42, total: 3, wantIndex: 0, wantWrapped: true},
		{name: "negative", index: -1, total: 3, wantIndex: 0, wantWrapped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, wrapped := Wrap(tt.index, tt.total)
			assert.Equal(t, tt.wantIndex, got)
			assert.Equal(t, tt.wantWrapped, wrapped)
		})
	}
}
