package controllers_fx

import (
	"go.uber.org/fx"

	"tripmate/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewGroupController),
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewVoteController),
	fx.Provide(controllers.NewAgentController))
