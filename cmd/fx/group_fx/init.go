package group_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripmate/internal/repositories"
	"tripmate/internal/services"
)

var Module = fx.Provide(
	provideGroupService, provideGroupRepo, providePreferenceRepo)

func provideGroupRepo(db *gorm.DB) repositories.GroupRepository {
	return repositories.NewGroupRepository(db)
}

func providePreferenceRepo(db *gorm.DB) repositories.PreferenceRepository {
	return repositories.NewPreferenceRepository(db)
}

func provideGroupService(
	groupRepo repositories.GroupRepository,
	accountRepo repositories.AccountRepository,
	prefRepo repositories.PreferenceRepository,
) services.GroupServiceInterface {
	return services.NewGroupService(groupRepo, accountRepo, prefRepo)
}
