package models

import "time"

// View is one viewer's completed watch-and-claim record against one campaign.
// The composite unique index enforces at most one view per (campaign, viewer)
// pair; the repository maps violations to ErrDuplicateClaim. Append-only: no
// soft delete, since a tombstoned row would still occupy the unique slot.
type View struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CampaignID     uint      `gorm:"not null;uniqueIndex:idx_views_campaign_viewer" json:"campaign_id"`
	ViewerID       uint      `gorm:"not null;uniqueIndex:idx_views_campaign_viewer;index" json:"viewer_id"`
	WatchedSeconds int       `gorm:"not null" json:"watched_seconds"`
	RewardAmount   int64     `gorm:"not null" json:"reward_amount"`
	Liked          bool      `gorm:"not null;default:false" json:"liked"`
	Subscribed     bool      `gorm:"not null;default:false" json:"subscribed"`
	CreatedAt      time.Time `json:"created_at"`

	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	Viewer   User     `gorm:"foreignKey:ViewerID" json:"-"`
}

func (View) TableName() string { return "views" }
