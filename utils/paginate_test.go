package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationSecondPageOfFifteen(t *testing.T) {
	p := NewPagination(2, 10, 15)

	assert.Equal(t, int64(15), p.TotalItems)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	assert.Nil(t, p.NextPage)
	require.NotNil(t, p.PrevPage)
	assert.Equal(t, 1, *p.PrevPage)
	assert.Equal(t, 10, p.Offset())
}

func TestNewPaginationFirstPage(t *testing.T) {
	p := NewPagination(1, 10, 15)

	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
	require.NotNil(t, p.NextPage)
	assert.Equal(t, 2, *p.NextPage)
	assert.Nil(t, p.PrevPage)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPaginationEmptyResult(t *testing.T) {
	p := NewPagination(1, 10, 0)

	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestNewPaginationClampsBadInput(t *testing.T) {
	p := NewPagination(0, -5, 25)

	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 3, p.TotalPages)
}
