package timeparsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompactDuration(t *testing.T) {
	// Fixed reference time for deterministic tests
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "+6h adds 6 hours",
			input: "+6h",
			want:  time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name:  "-1d subtracts 1 day",
			input: "-1d",
			want:  time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "-4w subtracts 4 weeks",
			input: "-4w",
			want:  time.Date(2025, 5, 18, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "-3m subtracts 3 months",
			input: "-3m",
			want:  time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "-1y subtracts 1 year",
			input: "-1y",
			want:  time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "unsigned is positive",
			input: "2d",
			want:  time.Date(2025, 6, 17, 12, 0, 0, 0, time.UTC),
		},
		{
			name:    "missing unit",
			input:   "-4",
			wantErr: true,
		},
		{
			name:    "unknown unit",
			input:   "-4x",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompactDuration(tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestIsCompactDuration(t *testing.T) {
	assert.True(t, IsCompactDuration("-4w"))
	assert.True(t, IsCompactDuration("+6h"))
	assert.True(t, IsCompactDuration("12d"))
	assert.False(t, IsCompactDuration("4 weeks ago"))
	assert.False(t, IsCompactDuration("2025-06-15"))
	assert.False(t, IsCompactDuration(""))
}

func TestParseAbsolute(t *testing.T) {
	got, err := ParseAbsolute("2024-06-01T12:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)))

	got, err = ParseAbsolute("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 1, got.Day())

	_, err = ParseAbsolute("not a date")
	assert.Error(t, err)
}

func TestParseLayering(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	// Absolute wins over everything else.
	got, err := Parse("2024-06-01T00:00:00Z", now)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))

	// Compact duration.
	got, err = Parse("-1d", now)
	require.NoError(t, err)
	assert.True(t, got.Equal(now.AddDate(0, 0, -1)))

	// Natural language falls through to the NLP layer.
	got, err = Parse("4 weeks ago", now)
	require.NoError(t, err)
	want := now.AddDate(0, 0, -28)
	assert.Equal(t, want.Year(), got.Year())
	assert.Equal(t, want.Month(), got.Month())
	assert.Equal(t, want.Day(), got.Day())

	got, err = Parse("yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, 14, got.Day())

	_, err = Parse("", now)
	assert.Error(t, err)

	_, err = Parse("complete gibberish expression", now)
	assert.Error(t, err)
}
