package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tavernbot/internal/adapter/repo/gorm/model"
	"tavernbot/internal/app/ports"
)

type WorldItemRepo struct {
	db *gorm.DB
}

func NewWorldItemRepo(db *gorm.DB) WorldItemRepo {
	return WorldItemRepo{db: db}
}

// SeedCatalog inserts ownership rows for catalog items that do not have
// one yet. Existing rows keep their owner.
func (r WorldItemRepo) SeedCatalog(ctx context.Context, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	rows := make([]model.WorldItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		rows = append(rows, model.WorldItem{ItemID: id})
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r WorldItemRepo) PickRandomUnclaimed(ctx context.Context) (string, error) {
	var m model.WorldItem
	err := getDBFromCtx(ctx, r.db).
		Where("owner_user_id IS NULL").
		Order("random()").
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ports.ErrNotFound
		}
		return "", err
	}
	return m.ItemID, nil
}

// Claim assigns the item to the user only while it is unowned. The
// conditional update is the arbiter between racing claimants: whoever
// lands first flips owner_user_id, everyone after affects zero rows.
func (r WorldItemRepo) Claim(ctx context.Context, itemID string, userID int64, at time.Time) error {
	db := getDBFromCtx(ctx, r.db)

	res := db.Model(&model.WorldItem{}).
		Where("item_id = ? AND owner_user_id IS NULL", itemID).
		Updates(map[string]any{
			"owner_user_id": userID,
			"claimed_at":    at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&model.WorldItem{}).Where("item_id = ?", itemID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return ports.ErrAlreadyClaimed
}
