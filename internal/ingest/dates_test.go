package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoerceDateLayouts(t *testing.T) {
	want := time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC)

	for _, cell := range []string{
		"15/03/2021",
		"15/3/2021",
		"2021-03-15",
		"2021-03-15 10:42:07",
	} {
		got := CoerceDate(cell)
		require.NotNil(t, got, "cell %q", cell)
		require.True(t, want.Equal(*got), "cell %q parsed as %v", cell, got)
	}
}

func TestCoerceDateExcelSerial(t *testing.T) {
	got := CoerceDate("44270")
	require.NotNil(t, got)
	require.Equal(t, 2021, got.Year())
	require.Equal(t, time.March, got.Month())
	require.Equal(t, 15, got.Day())
}

func TestCoerceDateNeverFails(t *testing.T) {
	for _, cell := range []string{"", "nat", "-", "sem data", "31/02/2020", "99999999"} {
		require.Nil(t, CoerceDate(cell), "cell %q", cell)
	}
}

func TestCoerceDateTruncatesTime(t *testing.T) {
	got := CoerceDate("02/07/2019 23:59:59")
	require.NotNil(t, got)
	require.Equal(t, time.Date(2019, time.July, 2, 0, 0, 0, 0, time.UTC), *got)
}
