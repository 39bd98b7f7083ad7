package chat_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripmate/internal/repositories"
	"tripmate/internal/services"
	"tripmate/pkg/ws"
)

var Module = fx.Provide(
	provideChatService, provideChatRepo, provideHub)

func provideChatRepo(db *gorm.DB) repositories.ChatRepository {
	return repositories.NewChatRepository(db)
}

func provideHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

func provideChatService(
	chatRepo repositories.ChatRepository,
	groupRepo repositories.GroupRepository,
	accountRepo repositories.AccountRepository,
	hub *ws.Hub,
) services.ChatServiceInterface {
	return services.NewChatService(chatRepo, groupRepo, accountRepo, hub)
}
