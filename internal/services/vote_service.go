package services

import (
	"context"

	"github.com/google/uuid"

	"tripmate/internal/models/db_models"
	"tripmate/internal/models/request_models"
	"tripmate/internal/repositories"
	"tripmate/pkg/utils"
)

type VoteServiceInterface interface {
	CastVote(ctx context.Context, accountID string, request request_models.CastVoteRequest) error
	GetResults(ctx context.Context, tripID string) (map[string]int64, error)
}

type VoteService struct {
	voteRepo  repositories.VoteRepository
	tripRepo  repositories.TripRepository
	groupRepo repositories.GroupRepository
}

func NewVoteService(
	voteRepo repositories.VoteRepository,
	tripRepo repositories.TripRepository,
	groupRepo repositories.GroupRepository,
) VoteServiceInterface {
	return &VoteService{
		voteRepo:  voteRepo,
		tripRepo:  tripRepo,
		groupRepo: groupRepo,
	}
}

func (v *VoteService) CastVote(ctx context.Context, accountID string, request request_models.CastVoteRequest) error {
	aid, err := uuid.Parse(accountID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	trip, err := v.tripRepo.FindByIdWithDetails(ctx, request.TripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}

	isMember, err := v.groupRepo.IsMember(ctx, trip.GroupID.String(), accountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !isMember {
		return utils.ErrGroupNotFound
	}

	vote := &db_models.Vote{
		TripID:    trip.ID,
		AccountID: aid,
		Choice:    request.Choice,
		Status:    true,
	}
	if err := v.voteRepo.Upsert(ctx, vote); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (v *VoteService) GetResults(ctx context.Context, tripID string) (map[string]int64, error) {
	trip, err := v.tripRepo.FindByIdWithDetails(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	counts, err := v.voteRepo.CountByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return counts, nil
}
