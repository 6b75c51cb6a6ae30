package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tavernbot/internal/adapter/repo/gorm/model"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

// Ensure upserts the player row. Usernames drift on Telegram, so the
// stored one is refreshed on every touch.
func (r PlayerRepo) Ensure(ctx context.Context, userID int64, username string) error {
	m := model.Player{
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username"}),
	}).Create(&m).Error
}
