package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		page, size   int
		wantOffset   int
		wantNumber   int
		wantPrevious *int
		wantNext     *int
	}{
		{
			name:       "first page of many",
			total:      25,
			page:       1,
			size:       10,
			wantOffset: 0,
			wantNumber: 1,
			wantNext:   intPtr(2),
		},
		{
			name:         "middle page",
			total:        25,
			page:         2,
			size:         10,
			wantOffset:   10,
			wantNumber:   2,
			wantPrevious: intPtr(1),
			wantNext:     intPtr(3),
		},
		{
			name:         "last partial page",
			total:        25,
			page:         3,
			size:         10,
			wantOffset:   20,
			wantNumber:   3,
			wantPrevious: intPtr(2),
		},
		{
			name:         "out of range clamps to last page",
			total:        25,
			page:         999,
			size:         10,
			wantOffset:   20,
			wantNumber:   3,
			wantPrevious: intPtr(2),
		},
		{
			name:       "zero page clamps to first",
			total:      25,
			page:       0,
			size:       10,
			wantOffset: 0,
			wantNumber: 1,
			wantNext:   intPtr(2),
		},
		{
			name:       "negative page clamps to first",
			total:      25,
			page:       -3,
			size:       10,
			wantOffset: 0,
			wantNumber: 1,
			wantNext:   intPtr(2),
		},
		{
			name:       "empty result set is a single empty page",
			total:      0,
			page:       5,
			size:       10,
			wantOffset: 0,
			wantNumber: 1,
		},
		{
			name:         "exact multiple has no trailing page",
			total:        20,
			page:         2,
			size:         10,
			wantOffset:   10,
			wantNumber:   2,
			wantPrevious: intPtr(1),
		},
		{
			name:       "size defaults when non-positive",
			total:      25,
			page:       1,
			size:       0,
			wantOffset: 0,
			wantNumber: 1,
			wantNext:   intPtr(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, p := Slice(tt.total, tt.page, tt.size)

			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantPrevious, p.Previous)
			assert.Equal(t, tt.wantNext, p.Next)
		})
	}
}

func TestSliceDefaultSize(t *testing.T) {
	_, p := Slice(25, 1, -1)
	assert.Equal(t, DefaultSize, p.Size)
}

func intPtr(n int) *int { return &n }
