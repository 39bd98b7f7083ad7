package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tripmate/internal/models/db_models"
)

type GroupRepository interface {
	Insert(ctx context.Context, group *db_models.Group) error
	FindById(ctx context.Context, id string) (*db_models.Group, error)
	FindByIdWithMembers(ctx context.Context, id string) (*db_models.Group, error)
	AddMember(ctx context.Context, member *db_models.GroupMember) error
	IsMember(ctx context.Context, groupID, accountID string) (bool, error)
	ListActiveMembers(ctx context.Context, groupID string) ([]db_models.GroupMember, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (g *groupRepository) Insert(ctx context.Context, group *db_models.Group) error {
	return g.db.WithContext(ctx).Create(group).Error
}

func (g *groupRepository) FindById(ctx context.Context, id string) (*db_models.Group, error) {
	var group db_models.Group
	err := g.db.WithContext(ctx).First(&group, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &group, nil
}

func (g *groupRepository) FindByIdWithMembers(ctx context.Context, id string) (*db_models.Group, error) {
	var group db_models.Group
	err := g.db.WithContext(ctx).
		Preload("Members", "status = ?", true).
		First(&group, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &group, nil
}

func (g *groupRepository) AddMember(ctx context.Context, member *db_models.GroupMember) error {
	return g.db.WithContext(ctx).Create(member).Error
}

func (g *groupRepository) IsMember(ctx context.Context, groupID, accountID string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).
		Model(&db_models.GroupMember{}).
		Where("group_id = ? AND account_id = ? AND status = ?", groupID, accountID, true).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (g *groupRepository) ListActiveMembers(ctx context.Context, groupID string) ([]db_models.GroupMember, error) {
	var members []db_models.GroupMember
	err := g.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, true).
		Find(&members).Error

	if err != nil {
		return nil, err
	}

	return members, nil
}
