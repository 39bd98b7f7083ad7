package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripmate/internal/repositories"
	"tripmate/internal/services"
)

var Module = fx.Provide(
	provideTripService, provideTripRepo, provideVoteRepo, provideVoteService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideVoteRepo(db *gorm.DB) repositories.VoteRepository {
	return repositories.NewVoteRepository(db)
}

func provideTripService(tripRepo repositories.TripRepository, groupRepo repositories.GroupRepository) services.TripServiceInterface {
	return services.NewTripService(tripRepo, groupRepo)
}

func provideVoteService(
	voteRepo repositories.VoteRepository,
	tripRepo repositories.TripRepository,
	groupRepo repositories.GroupRepository,
) services.VoteServiceInterface {
	return services.NewVoteService(voteRepo, tripRepo, groupRepo)
}
