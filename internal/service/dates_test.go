package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func TestParseDate(t *testing.T) {
	loc := chicago(t)

	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "default end date", input: "2037-12-30", want: 2145765600},
		{name: "default start date", input: "1971-01-01", want: 31557600},
		{name: "hours and minutes", input: "2023-01-12T09:55", want: 1673538900},
		{name: "hours only", input: "2023-01-12T09", want: 1673538900 - 55*60},
		{name: "full time", input: "2023-01-12T09:55:30", want: 1673538930},
		{name: "midnight by default", input: "2023-01-12", want: 1673538900 - 9*3600 - 55*60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	loc := chicago(t)

	for _, input := range []string{
		"",
		"yesterday",
		"2023/01/12",
		"2023-13-01",
		"2023-01-12T",
		"2023-01-12T25",
		"2023-01-12T09:60",
		"2023-01-12T09:55:61",
		"2023-01-12T09:55:00:00",
		"2023-01-12T009",
		"2023-01-12T+1",
		"2023-01-12T-1",
		"2023-01-12T9",
		"2023-01-12T9:5:5",
		"2023-01-12T09:5",
		"2023-01-12T09:55:+5",
		"2023-01-12T 9",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input, loc)
			assert.Error(t, err)
		})
	}
}

func TestParseRange(t *testing.T) {
	loc := chicago(t)

	start, end, err := ParseRange("", "", loc)
	require.NoError(t, err)
	assert.Equal(t, int64(31557600), start)
	assert.Equal(t, int64(2145765600), end)

	_, _, err = ParseRange("2023-02-01", "2023-01-01", loc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'start'")

	_, _, err = ParseRange("2023-01-01", "bad", loc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'end'")
}
