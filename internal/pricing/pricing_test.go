package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostPerView(t *testing.T) {
	assert.EqualValues(t, 10, CostPerView(2))
	assert.EqualValues(t, 50, CostPerView(10))
	assert.EqualValues(t, 100, CostPerView(20))

	for m := 2; m <= 20; m++ {
		want := int64(10 + (m-2)*5)
		assert.Equal(t, want, CostPerView(m), "m=%d", m)
	}
}

func TestBaseReward(t *testing.T) {
	assert.EqualValues(t, 5, BaseReward(2))
	assert.EqualValues(t, 11, BaseReward(5))
	assert.EqualValues(t, 41, BaseReward(20))

	for m := 2; m <= 30; m++ {
		want := int64(5)
		if m > 2 {
			want = int64(5 + (m-2)*2)
		}
		assert.Equal(t, want, BaseReward(m), "m=%d", m)
	}
}

func TestTotalReward(t *testing.T) {
	assert.EqualValues(t, 14, TotalReward(5, true, true))
	assert.EqualValues(t, 12, TotalReward(5, true, false))
	assert.EqualValues(t, 13, TotalReward(5, false, true))
	assert.EqualValues(t, 11, TotalReward(5, false, false))
}

func TestMinutesFromSecondsFloors(t *testing.T) {
	assert.Equal(t, 2, MinutesFromSeconds(120))
	assert.Equal(t, 2, MinutesFromSeconds(179))
	assert.Equal(t, 3, MinutesFromSeconds(180))
	assert.Equal(t, 0, MinutesFromSeconds(59))
	assert.Equal(t, 0, MinutesFromSeconds(-1))
}

func TestCampaignCost(t *testing.T) {
	// 5 views of 2 minutes: 5 * 10
	assert.EqualValues(t, 50, CampaignCost(5, 120))
	// 3 views of 10 minutes: 3 * 50
	assert.EqualValues(t, 150, CampaignCost(3, 600))
	// fractional minutes floor before pricing
	assert.EqualValues(t, 10, CampaignCost(1, 179))
}
