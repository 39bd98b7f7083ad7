package repositories

import (
	"context"

	"gorm.io/gorm"

	"tripmate/internal/models/db_models"
)

type PreferenceRepository interface {
	// ReplaceForAccount swaps out every active preference the account has in
	// the given categories with the supplied rows, in one transaction.
	ReplaceForAccount(ctx context.Context, accountID string, prefs []db_models.Preference) error
	FindActiveByAccount(ctx context.Context, accountID string) ([]db_models.Preference, error)
	FindActiveByAccounts(ctx context.Context, accountIDs []string) ([]db_models.Preference, error)
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (p *preferenceRepository) ReplaceForAccount(ctx context.Context, accountID string, prefs []db_models.Preference) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make([]string, 0, len(prefs))
		for _, pref := range prefs {
			categories = append(categories, pref.Category)
		}

		if len(categories) > 0 {
			err := tx.Model(&db_models.Preference{}).
				Where("account_id = ? AND category IN ?", accountID, categories).
				Update("status", false).Error
			if err != nil {
				return err
			}
		}

		if len(prefs) == 0 {
			return nil
		}
		return tx.Create(&prefs).Error
	})
}

func (p *preferenceRepository) FindActiveByAccount(ctx context.Context, accountID string) ([]db_models.Preference, error) {
	var prefs []db_models.Preference
	err := p.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, true).
		Find(&prefs).Error

	if err != nil {
		return nil, err
	}

	return prefs, nil
}

func (p *preferenceRepository) FindActiveByAccounts(ctx context.Context, accountIDs []string) ([]db_models.Preference, error) {
	var prefs []db_models.Preference
	err := p.db.WithContext(ctx).
		Where("account_id IN ? AND status = ?", accountIDs, true).
		Find(&prefs).Error

	if err != nil {
		return nil, err
	}

	return prefs, nil
}
