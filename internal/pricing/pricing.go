// Package pricing holds the coin formulas for campaign costs and view
// rewards. Both are functions of the watch duration in whole minutes, but
// they are distinct: a creator pays 5 coins per extra minute while a viewer
// earns 2 — the spread is the platform margin. Do not conflate them.
package pricing

// MinutesFromSeconds floors a watch duration to whole minutes. All pricing
// uses floored minutes, never rounded.
func MinutesFromSeconds(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds / 60
}

// CostPerView is the price a creator pays per guaranteed view of m minutes:
// 10 coins at the 2-minute floor, +5 per extra minute.
func CostPerView(m int) int64 {
	if m <= 2 {
		return 10
	}
	return 10 + int64(m-2)*5
}

// BaseReward is what a viewer earns for completing an m-minute watch:
// 5 coins at the 2-minute floor, +2 per extra minute.
func BaseReward(m int) int64 {
	if m <= 2 {
		return 5
	}
	return 5 + int64(m-2)*2
}

// BonusReward is the extra credit for the optional engagement actions.
func BonusReward(liked, subscribed bool) int64 {
	var bonus int64
	if liked {
		bonus += 1
	}
	if subscribed {
		bonus += 2
	}
	return bonus
}

func TotalReward(m int, liked, subscribed bool) int64 {
	return BaseReward(m) + BonusReward(liked, subscribed)
}

// CampaignCost is the total debit for a campaign: views times per-view price.
func CampaignCost(requiredViews, watchSeconds int) int64 {
	return int64(requiredViews) * CostPerView(MinutesFromSeconds(watchSeconds))
}
