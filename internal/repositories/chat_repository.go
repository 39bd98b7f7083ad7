package repositories

import (
	"context"

	"gorm.io/gorm"

	"tripmate/internal/models/db_models"
)

type ChatRepository interface {
	Insert(ctx context.Context, message *db_models.ChatMessage) error
	// FindRecentByGroup returns up to limit of the newest active messages
	// for the group, oldest first.
	FindRecentByGroup(ctx context.Context, groupID string, limit int) ([]db_models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (c *chatRepository) Insert(ctx context.Context, message *db_models.ChatMessage) error {
	return c.db.WithContext(ctx).Create(message).Error
}

func (c *chatRepository) FindRecentByGroup(ctx context.Context, groupID string, limit int) ([]db_models.ChatMessage, error) {
	var messages []db_models.ChatMessage
	err := c.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	// reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
