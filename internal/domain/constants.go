package domain

// Campaign lifecycle. A campaign flips to completed when used_views reaches
// required_views; there is no pause or reactivation.
const (
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
)

// Transaction types for the append-only coin ledger.
const (
	TxTypeSpend         = "spend"
	TxTypeReward        = "reward"
	TxTypeWelcomeBonus  = "welcome_bonus"
	TxTypeReferralBonus = "referral_bonus"
)

// Coin amounts credited outside the watch/boost flows.
const (
	WelcomeBonusCoins     = 10
	ReferralBonusReferrer = 10
	ReferralBonusReferred = 5
)

// Watch duration bounds for new campaigns, in seconds (2 to 20 minutes).
const (
	MinWatchSeconds = 120
	MaxWatchSeconds = 1200
)
