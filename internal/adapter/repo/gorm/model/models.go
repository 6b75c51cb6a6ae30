// Package model holds the gorm row types for the bot's tables. The
// schema of record is migrations/; regenerate with tools/modelgen after
// a migration changes it.
package model

import "time"

type Player struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	Username  string    `gorm:"column:username"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Player) TableName() string { return "players" }

// WorldItem tracks per-item ownership. OwnerUserID is NULL while the
// item is still up for grabs; the claim update keys on that.
type WorldItem struct {
	ItemID      string     `gorm:"column:item_id;primaryKey"`
	OwnerUserID *int64     `gorm:"column:owner_user_id"`
	ClaimedAt   *time.Time `gorm:"column:claimed_at"`
}

func (WorldItem) TableName() string { return "world_items" }

type PlayerItem struct {
	UserID     int64     `gorm:"column:user_id;primaryKey"`
	ItemID     string    `gorm:"column:item_id;primaryKey"`
	Equipped   bool      `gorm:"column:equipped"`
	AcquiredAt time.Time `gorm:"column:acquired_at"`
}

func (PlayerItem) TableName() string { return "player_items" }
