package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripmate/cmd/fx/account_fx"
	"tripmate/cmd/fx/agent_fx"
	"tripmate/cmd/fx/chat_fx"
	"tripmate/cmd/fx/config_fx"
	"tripmate/cmd/fx/controllers_fx"
	"tripmate/cmd/fx/db_fx"
	"tripmate/cmd/fx/group_fx"
	"tripmate/cmd/fx/trip_fx"
	"tripmate/internal/api/controllers"
	"tripmate/internal/config"
	"tripmate/internal/infra"
	"tripmate/internal/models/db_models"
	"tripmate/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		account_fx.Module,
		group_fx.Module,
		chat_fx.Module,
		trip_fx.Module,
		agent_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(Migrate),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Group{},
		&db_models.GroupMember{},
		&db_models.Preference{},
		&db_models.ChatMessage{},
		&db_models.Trip{},
		&db_models.Flight{},
		&db_models.Hotel{},
		&db_models.ItineraryEntry{},
		&db_models.Vote{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	groupController *controllers.GroupController,
	chatController *controllers.ChatController,
	tripController *controllers.TripController,
	voteController *controllers.VoteController,
	agentController *controllers.AgentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, groupController, chatController, tripController, voteController, agentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	groupController *controllers.GroupController,
	chatController *controllers.ChatController,
	tripController *controllers.TripController,
	voteController *controllers.VoteController,
	agentController *controllers.AgentController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware())

	groups := authed.Group("/groups")
	groups.POST("", groupController.CreateGroup)
	groups.GET("/:id", groupController.GetGroup)
	groups.POST("/members", groupController.AddMember)
	groups.GET("/:id/trip", tripController.GetActiveTrip)

	authed.PUT("/preferences", groupController.SetPreferences)

	chat := authed.Group("/chat")
	chat.POST("/messages", chatController.PostMessage)
	chat.GET("/:group_id/messages", chatController.GetMessages)
	chat.GET("/:group_id/ws", chatController.Subscribe)

	trips := authed.Group("/trips")
	trips.GET("/:id", tripController.GetTripDetail)

	votes := authed.Group("/votes")
	votes.POST("", voteController.CastVote)
	votes.GET("/:trip_id", voteController.GetResults)

	agent := authed.Group("/agent")
	agent.POST("/itinerary", agentController.GenerateItinerary)
	agent.POST("/message", agentController.SendMessage)
}
