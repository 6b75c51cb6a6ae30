package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tavernbot/internal/adapter/repo/gorm/model"
	"tavernbot/internal/app/ports"
)

type PlayerItemRepo struct {
	db *gorm.DB
}

func NewPlayerItemRepo(db *gorm.DB) PlayerItemRepo {
	return PlayerItemRepo{db: db}
}

func (r PlayerItemRepo) Link(ctx context.Context, userID int64, itemID string, at time.Time) error {
	m := model.PlayerItem{
		UserID:     userID,
		ItemID:     itemID,
		AcquiredAt: at,
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m).Error
}

func (r PlayerItemRepo) ListByUser(ctx context.Context, userID int64) ([]ports.PlayerItemRecord, error) {
	rows := []model.PlayerItem{}
	err := getDBFromCtx(ctx, r.db).
		Where("user_id = ?", userID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "acquired_at"}, Desc: true},
				{Column: clause.Column{Name: "item_id"}},
			},
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.PlayerItemRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.PlayerItemRecord{
			ItemID:     row.ItemID,
			Equipped:   row.Equipped,
			AcquiredAt: row.AcquiredAt,
		})
	}
	return out, nil
}

func (r PlayerItemRepo) CountEquipped(ctx context.Context, userID int64) (int, error) {
	var count int64
	err := getDBFromCtx(ctx, r.db).
		Model(&model.PlayerItem{}).
		Where("user_id = ? AND equipped", userID).
		Count(&count).Error
	return int(count), err
}

func (r PlayerItemRepo) SetEquipped(ctx context.Context, userID int64, itemID string, equipped bool) error {
	res := getDBFromCtx(ctx, r.db).
		Model(&model.PlayerItem{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Update("equipped", equipped)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotOwned
	}
	return nil
}
