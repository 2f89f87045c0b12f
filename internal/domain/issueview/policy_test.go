package issueview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicHasMore(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{"empty page is the last one", 0, false},
		{"partial page is the last one", 3, false},
		{"one short of full is the last one", 4, false},
		{"full page may have a successor", 5, true},
		{"oversized page may have a successor", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HeuristicHasMore(tt.count, PageSize))
		})
	}
}
