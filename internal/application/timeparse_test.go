package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDateTime(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"with seconds", "2026-03-01T09:30:15", time.Date(2026, 3, 1, 9, 30, 15, 0, time.Local)},
		{"without seconds", "2026-03-01T09:30", time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)},
		{"space separator", "2026-03-01 09:30", time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)},
		{"surrounding whitespace", "  2026-03-01T09:30  ", time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLocalDateTime(tc.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}
}

func TestParseLocalDateTimeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"not-a-date", "2026-13-40T99:99", "2026-03-01", "09:30"} {
		_, err := ParseLocalDateTime(in)
		assert.ErrorIs(t, err, ErrUnparseableTime, "input %q", in)
	}
}

func TestOptionalLocalDateTime(t *testing.T) {
	got, err := OptionalLocalDateTime("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = OptionalLocalDateTime("   ")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = OptionalLocalDateTime("2026-03-01T09:30")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9, got.Hour())

	got, err = OptionalLocalDateTime("tomorrow-ish")
	assert.ErrorIs(t, err, ErrUnparseableTime)
	assert.Nil(t, got)
}
