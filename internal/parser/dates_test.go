package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateSerialNumber(t *testing.T) {
	got, ok := NormalizeDate("45000")
	require.True(t, ok)
	assert.Equal(t, "2023.03.15", got)
}

func TestNormalizeDateSpellings(t *testing.T) {
	cases := map[string]string{
		"2023-03-15":    "2023.03.15",
		"2023.03.15":    "2023.03.15",
		"2023. 03. 15":  "2023.03.15",
		"2023/3/5":      "2023.03.05",
		"2024.09":       "2024.09",
		"  2023-03-15 ": "2023.03.15",
	}
	for in, want := range cases {
		got, ok := NormalizeDate(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	got, ok := NormalizeDate("미정")
	assert.False(t, ok)
	assert.Equal(t, "미정", got)

	got, ok = NormalizeDate("")
	assert.True(t, ok)
	assert.Equal(t, "", got)
}

func TestNormalizeDateDash(t *testing.T) {
	got, ok := NormalizeDateDash("45000")
	require.True(t, ok)
	assert.Equal(t, "2023-03-15", got)

	got, ok = NormalizeDateDash("2023.03.05")
	require.True(t, ok)
	assert.Equal(t, "2023-03-05", got)
}

func TestParseDateLayouts(t *testing.T) {
	for _, in := range []string{"2025.03.01", "2025-03-01"} {
		d, ok := ParseDate(in)
		require.True(t, ok, in)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, 3, int(d.Month()))
		assert.Equal(t, 1, d.Day())
	}

	d, ok := ParseDate("2025.09")
	require.True(t, ok)
	assert.Equal(t, 9, int(d.Month()))
	assert.Equal(t, 1, d.Day())

	_, ok = ParseDate("no date")
	assert.False(t, ok)
}

func TestMonth(t *testing.T) {
	assert.Equal(t, "09", Month("2024.09.01"))
	assert.Equal(t, "02", Month("2025-02-28"))
	assert.Equal(t, "", Month("언젠가"))
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "2025.03.01 ~ 2026.02.28", FormatPeriod("2025.03.01", "2026.02.28"))
}
