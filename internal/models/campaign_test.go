package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		used, required int
		want           int
	}{
		{0, 10, 0},
		{3, 10, 30},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
		{12, 10, 100}, // over target clamps
		{0, 0, 0},     // degenerate
	}
	for _, tc := range cases {
		c := Campaign{UsedViews: tc.used, RequiredViews: tc.required}
		assert.Equal(t, tc.want, c.ProgressPercent(), "used=%d required=%d", tc.used, tc.required)
	}
}

func TestMinutesFloors(t *testing.T) {
	assert.Equal(t, 2, (&Campaign{WatchSeconds: 179}).Minutes())
	assert.Equal(t, 3, (&Campaign{WatchSeconds: 180}).Minutes())
}
