package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 0))
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"", 1, true},
		{"3", 3, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePage(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestNewPageLinks(t *testing.T) {
	base, err := url.Parse("http://testserver/api/history?page=2")
	require.NoError(t, err)

	p := NewPage(base, 2, 10, 25, []int{11, 12})
	require.NotNil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, "http://testserver/api/history?page=3", *p.Next)
	assert.Equal(t, "http://testserver/api/history", *p.Previous)
	assert.Equal(t, int64(25), p.Count)

	last := NewPage[int](base, 3, 10, 25, nil)
	assert.Nil(t, last.Next)
	assert.NotNil(t, last.Results)
	assert.Empty(t, last.Results)
}
