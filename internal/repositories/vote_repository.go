package repositories

import (
	"context"

	"gorm.io/gorm"

	"tripmate/internal/models/db_models"
)

type VoteRepository interface {
	// Upsert replaces the account's previous vote on the trip, if any.
	Upsert(ctx context.Context, vote *db_models.Vote) error
	CountByTrip(ctx context.Context, tripID string) (map[string]int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (v *voteRepository) Upsert(ctx context.Context, vote *db_models.Vote) error {
	return v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.Vote{}).
			Where("trip_id = ? AND account_id = ? AND status = ?", vote.TripID, vote.AccountID, true).
			Update("status", false).Error; err != nil {
			return err
		}
		return tx.Create(vote).Error
	})
}

func (v *voteRepository) CountByTrip(ctx context.Context, tripID string) (map[string]int64, error) {
	type row struct {
		Choice string
		Total  int64
	}

	var rows []row
	err := v.db.WithContext(ctx).
		Model(&db_models.Vote{}).
		Select("choice, count(*) as total").
		Where("trip_id = ? AND status = ?", tripID, true).
		Group("choice").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Choice] = r.Total
	}
	return counts, nil
}
