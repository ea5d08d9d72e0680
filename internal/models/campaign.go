package models

import (
	"math"
	"time"

	"gorm.io/gorm"

	"ytboost/internal/domain"
)

// Campaign is a creator's standing request for RequiredViews views of
// WatchSeconds each. Cost was debited in full at creation.
type Campaign struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`
	VideoID       string         `gorm:"size:11;not null" json:"video_id"`
	RequiredViews int            `gorm:"not null" json:"required_views"`
	UsedViews     int            `gorm:"not null;default:0" json:"used_views"`
	WatchSeconds  int            `gorm:"not null" json:"watch_seconds"`
	Cost          int64          `gorm:"not null" json:"cost"`
	Status        string         `gorm:"size:20;not null;index" json:"status"` // active | completed
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Campaign) TableName() string { return "campaigns" }

// Minutes is the whole-minute watch duration, floored.
func (c *Campaign) Minutes() int { return c.WatchSeconds / 60 }

func (c *Campaign) IsCompleted() bool { return c.Status == domain.CampaignStatusCompleted }

// ProgressPercent reports completion as round(100*used/required) clamped to
// [0,100]. UsedViews can briefly exceed RequiredViews under concurrent
// claims, hence the clamp.
func (c *Campaign) ProgressPercent() int {
	if c.RequiredViews <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(c.UsedViews) / float64(c.RequiredViews)))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}
