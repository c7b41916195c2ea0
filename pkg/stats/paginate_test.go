package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Paginate(items, 1, 3))
	assert.Equal(t, []int{4, 5, 6}, Paginate(items, 2, 3))
	assert.Equal(t, []int{7}, Paginate(items, 3, 3))
}

func TestPaginateBeyondRange(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Empty(t, Paginate(items, 4, 3))
	assert.Empty(t, Paginate([]int{}, 1, 10))
}

func TestPaginateInvalidArgs(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Empty(t, Paginate(items, 0, 3))
	assert.Empty(t, Paginate(items, 1, 0))
}
