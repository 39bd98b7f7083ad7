package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripmate/internal/config"
	"tripmate/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(cfg config.Config) *gorm.DB {
	return infra.InitPostgresql(cfg)
}
