package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		pageSize   int
		wantPages  int
		wantLength int
	}{
		{"exact multiple", 12, 1, 6, 2, 0},
		{"remainder adds a page", 13, 1, 6, 3, 0},
		{"empty", 0, 1, 6, 0, 0},
		{"page past the end keeps totals", 13, 9, 6, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginated[int](nil, tt.total, tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page, p.Page)
			assert.NotNil(t, p.Items)
			assert.Len(t, p.Items, tt.wantLength)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 6))
	assert.Equal(t, 6, Offset(2, 6))
	assert.Equal(t, 60, Offset(11, 6))
	assert.Equal(t, 0, Offset(0, 6))
}
