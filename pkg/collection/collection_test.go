package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(n int) int { return n * n })
	assert.Equal(t, []int{1, 4, 9}, got)
	assert.Empty(t, Map(nil, func(n int) int { return n }))
}

func TestFilter(t *testing.T) {
	got := Filter([]string{"road", "mtb", "gravel"}, func(s string) bool { return len(s) > 3 })
	assert.Equal(t, []string{"road", "gravel"}, got)
}

func TestFirstAndContains(t *testing.T) {
	nums := []int{5, 8, 13}

	v, ok := First(nums, func(n int) bool { return n%2 == 0 })
	assert.True(t, ok)
	assert.Equal(t, 8, v)

	_, ok = First(nums, func(n int) bool { return n > 100 })
	assert.False(t, ok)

	assert.True(t, Contains(nums, func(n int) bool { return n == 13 }))
	assert.False(t, Contains(nums, func(n int) bool { return n == 2 }))
}

func TestReduce(t *testing.T) {
	sum := Reduce([]int{2, 3, 4}, 1, func(carry, n int) int { return carry * n })
	assert.Equal(t, 24, sum)
}
