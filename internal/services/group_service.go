package services

import (
	"context"

	"github.com/google/uuid"

	"tripmate/internal/models/db_models"
	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/repositories"
	"tripmate/pkg/utils"
)

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, hostID string, request request_models.CreateGroupRequest) (*response_models.GroupResponse, error)
	AddMember(ctx context.Context, request request_models.AddMemberRequest) error
	GetGroup(ctx context.Context, groupID string) (*response_models.GroupResponse, error)
	SetPreferences(ctx context.Context, accountID string, request request_models.SetPreferencesRequest) error
}

type GroupService struct {
	groupRepo   repositories.GroupRepository
	accountRepo repositories.AccountRepository
	prefRepo    repositories.PreferenceRepository
}

func NewGroupService(
	groupRepo repositories.GroupRepository,
	accountRepo repositories.AccountRepository,
	prefRepo repositories.PreferenceRepository,
) GroupServiceInterface {
	return &GroupService{
		groupRepo:   groupRepo,
		accountRepo: accountRepo,
		prefRepo:    prefRepo,
	}
}

func (g *GroupService) CreateGroup(ctx context.Context, hostID string, request request_models.CreateGroupRequest) (*response_models.GroupResponse, error) {
	host, err := uuid.Parse(hostID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	group := &db_models.Group{
		Name:   request.Name,
		HostID: host,
		Status: true,
	}

	if err := g.groupRepo.Insert(ctx, group); err != nil {
		return nil, utils.ErrDatabaseError
	}

	// the host is always a member of their own group
	member := &db_models.GroupMember{
		GroupID:   group.ID,
		AccountID: host,
		Status:    true,
	}
	if err := g.groupRepo.AddMember(ctx, member); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.GroupResponse{
		ID:     group.ID.String(),
		Name:   group.Name,
		HostID: group.HostID.String(),
	}, nil
}

func (g *GroupService) AddMember(ctx context.Context, request request_models.AddMemberRequest) error {
	group, err := g.groupRepo.FindById(ctx, request.GroupID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if group == nil {
		return utils.ErrGroupNotFound
	}

	account, err := g.accountRepo.FindById(ctx, request.AccountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	already, err := g.groupRepo.IsMember(ctx, request.GroupID, request.AccountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if already {
		return nil
	}

	member := &db_models.GroupMember{
		GroupID:   group.ID,
		AccountID: account.ID,
		Status:    true,
	}
	if err := g.groupRepo.AddMember(ctx, member); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (g *GroupService) GetGroup(ctx context.Context, groupID string) (*response_models.GroupResponse, error) {
	group, err := g.groupRepo.FindByIdWithMembers(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	members := make([]string, 0, len(group.Members))
	for _, m := range group.Members {
		members = append(members, m.AccountID.String())
	}

	return &response_models.GroupResponse{
		ID:      group.ID.String(),
		Name:    group.Name,
		HostID:  group.HostID.String(),
		Members: members,
	}, nil
}

func (g *GroupService) SetPreferences(ctx context.Context, accountID string, request request_models.SetPreferencesRequest) error {
	switch request.Category {
	case db_models.PrefDestination, db_models.PrefActivity, db_models.PrefPrice,
		db_models.PrefAccommodation, db_models.PrefTransport, db_models.PrefMotivation:
	default:
		return utils.ErrInvalidInput
	}

	aid, err := uuid.Parse(accountID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	prefs := make([]db_models.Preference, 0, len(request.Values))
	for _, v := range request.Values {
		if v == "" {
			continue
		}
		prefs = append(prefs, db_models.Preference{
			AccountID: aid,
			Category:  request.Category,
			Value:     v,
			Status:    true,
		})
	}

	if err := g.prefRepo.ReplaceForAccount(ctx, accountID, prefs); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}
