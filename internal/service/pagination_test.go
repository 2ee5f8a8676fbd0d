package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePageDefaults(t *testing.T) {
	page, limit, err := normalizePage(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, page)
	require.Equal(t, defaultPageSize, limit)
}

func TestNormalizePageRejectsOutOfRange(t *testing.T) {
	for _, tc := range []struct{ page, limit int }{
		{-1, 10},
		{1, -5},
		{1, maxPageSize + 1},
	} {
		_, _, err := normalizePage(tc.page, tc.limit)
		require.ErrorIs(t, err, ErrInvalidInput, "page=%d limit=%d", tc.page, tc.limit)
	}
}

func TestNewPageInfo(t *testing.T) {
	cases := []struct {
		total      int64
		limit      int
		totalPages int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
	}
	for _, tc := range cases {
		info := newPageInfo(1, tc.limit, tc.total)
		require.Equal(t, tc.totalPages, info.TotalPages, "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestOffsetOf(t *testing.T) {
	require.Equal(t, 0, offsetOf(1, 10))
	require.Equal(t, 40, offsetOf(5, 10))
}
