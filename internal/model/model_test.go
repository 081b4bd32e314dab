package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	valid := []string{"top-left", "top-right", "bottom-left", "bottom-right", "center"}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			p, err := ParsePosition(s)
			require.NoError(t, err)
			assert.Equal(t, Position(s), p)
		})
	}

	for _, s := range []string{"middle", "", "top", "bottomright", "Center "} {
		t.Run("invalid_"+s, func(t *testing.T) {
			_, err := ParsePosition(s)
			assert.Error(t, err)
		})
	}
}

func TestCaptureDateFormat(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{
			name: "exif example date",
			time: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.Local),
			want: "January 15, 2024",
		},
		{
			name: "single digit day is padded",
			time: time.Date(2023, time.July, 5, 0, 0, 0, 0, time.Local),
			want: "July 05, 2023",
		},
		{
			name: "december",
			time: time.Date(1999, time.December, 31, 23, 59, 59, 0, time.Local),
			want: "December 31, 1999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CaptureDate{Time: tt.time, Source: SourceEXIF}
			assert.Equal(t, tt.want, d.Format())
		})
	}
}
