package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"tripmate/internal/models/db_models"
	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/repositories"
	"tripmate/pkg/utils"
	"tripmate/pkg/ws"
)

type ChatServiceInterface interface {
	PostMessage(ctx context.Context, accountID string, request request_models.PostMessageRequest) (*response_models.ChatMessageResponse, error)
	GetRecentMessages(ctx context.Context, groupID string, limit int) ([]response_models.ChatMessageResponse, error)
}

type ChatService struct {
	chatRepo    repositories.ChatRepository
	groupRepo   repositories.GroupRepository
	accountRepo repositories.AccountRepository
	hub         *ws.Hub
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	groupRepo repositories.GroupRepository,
	accountRepo repositories.AccountRepository,
	hub *ws.Hub,
) ChatServiceInterface {
	return &ChatService{
		chatRepo:    chatRepo,
		groupRepo:   groupRepo,
		accountRepo: accountRepo,
		hub:         hub,
	}
}

func (c *ChatService) PostMessage(ctx context.Context, accountID string, request request_models.PostMessageRequest) (*response_models.ChatMessageResponse, error) {
	aid, err := uuid.Parse(accountID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	gid, err := uuid.Parse(request.GroupID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	isMember, err := c.groupRepo.IsMember(ctx, request.GroupID, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !isMember {
		return nil, utils.ErrGroupNotFound
	}

	message := &db_models.ChatMessage{
		GroupID:   gid,
		AccountID: aid,
		Message:   request.Message,
		Status:    true,
	}
	if err := c.chatRepo.Insert(ctx, message); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := &response_models.ChatMessageResponse{
		ID:        message.ID.String(),
		GroupID:   message.GroupID.String(),
		AccountID: message.AccountID.String(),
		Message:   message.Message,
		SentAt:    message.CreatedAt,
	}
	if account, err := c.accountRepo.FindById(ctx, accountID); err == nil && account != nil {
		resp.Author = account.Name
	}

	if c.hub != nil {
		if payload, err := json.Marshal(resp); err == nil {
			c.hub.Broadcast(request.GroupID, payload)
		} else {
			log.Printf("failed to encode chat broadcast: %v", err)
		}
	}

	return resp, nil
}

func (c *ChatService) GetRecentMessages(ctx context.Context, groupID string, limit int) ([]response_models.ChatMessageResponse, error) {
	group, err := c.groupRepo.FindById(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	messages, err := c.chatRepo.FindRecentByGroup(ctx, groupID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.AccountID.String())
	}
	names := make(map[string]string)
	if accounts, err := c.accountRepo.FindByIds(ctx, ids); err == nil {
		for _, a := range accounts {
			names[a.ID.String()] = a.Name
		}
	}

	out := make([]response_models.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, response_models.ChatMessageResponse{
			ID:        m.ID.String(),
			GroupID:   m.GroupID.String(),
			AccountID: m.AccountID.String(),
			Author:    names[m.AccountID.String()],
			Message:   m.Message,
			SentAt:    m.CreatedAt,
		})
	}

	return out, nil
}
