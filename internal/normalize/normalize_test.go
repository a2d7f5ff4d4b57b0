package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payadvice/internal/normalize"
)

func TestDate_SupportedFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"03.12.2025", "2025-12-03"},
		{"07/11/2025", "2025-11-07"},
		{"07-11-2025", "2025-11-07"},
		{"2025-12-03", "2025-12-03"},
		{"  03.12.2025  ", "2025-12-03"},
	}

	for _, tc := range cases {
		got, ok := normalize.Date(tc.in)
		require.True(t, ok, "expected %q to parse", tc.in)
		assert.Equal(t, tc.want, got.Format("2006-01-02"))
	}
}

func TestDate_SingleDigitDayAndMonth(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"7/11/2025", "2025-11-07"},
		{"7.1.2025", "2025-01-07"},
		{"3-4-2025", "2025-04-03"},
	}

	for _, tc := range cases {
		got, ok := normalize.Date(tc.in)
		require.True(t, ok, "expected %q to parse", tc.in)
		assert.Equal(t, tc.want, got.Format("2006-01-02"))
	}
}

func TestDate_EmbeddedInText(t *testing.T) {
	got, ok := normalize.Date("paid on 03.12.2025 via NEFT")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestDate_InvalidInput(t *testing.T) {
	for _, in := range []string{"", "not a date", "99.99.2025", "32/01/2025", "00-00-0000"} {
		_, ok := normalize.Date(in)
		assert.False(t, ok, "expected %q to fail", in)
	}
}

func TestDate_DayFirstPriority(t *testing.T) {
	// 03/04 is 3 April, never 4 March.
	got, ok := normalize.Date("03/04/2025")
	require.True(t, ok)
	assert.Equal(t, "2025-04-03", got.Format("2006-01-02"))
}

func TestDateString_InvalidIsEmpty(t *testing.T) {
	assert.Equal(t, "", normalize.DateString("garbage"))
	assert.Equal(t, "2025-11-07", normalize.DateString("07/11/2025"))
}

func TestAmount_StripsFormatting(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"₹1,23,456.78", 123456.78},
		{"123456.78", 123456.78},
		{"$ 999.00", 999.00},
		{"€1,000", 1000},
		{"£ 42", 42},
		{" 1,234.5 ", 1234.5},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalize.Amount(tc.in), "input %q", tc.in)
	}
}

func TestAmount_InvalidIsZero(t *testing.T) {
	for _, in := range []string{"", "abc", "₹", "12.34.56"} {
		assert.Equal(t, 0.0, normalize.Amount(in), "input %q", in)
	}
}
