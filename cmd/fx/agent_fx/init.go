package agent_fx

import (
	"log"

	"go.uber.org/fx"

	"tripmate/internal/config"
	"tripmate/internal/repositories"
	"tripmate/internal/services"
	"tripmate/pkg/triplock"
	"tripmate/pkg/utils"
)

var Module = fx.Provide(
	provideAgentService,
	provideContextService,
	provideToolDispatcher,
	providePriceSearchClient,
	provideCompletionClient,
	provideTripLocks,
)

func providePriceSearchClient(cfg config.Config) services.PriceSearchInterface {
	return services.NewAmadeusClient(cfg)
}

func provideCompletionClient(cfg config.Config) utils.CompletionClientInterface {
	client, err := utils.NewCompletionClient(cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	if err != nil {
		log.Fatalf("Failed to create completion client: %v", err)
	}
	return client
}

func provideTripLocks() triplock.KeyedLocker {
	return triplock.NewKeyedLock()
}

func provideContextService(
	groupRepo repositories.GroupRepository,
	accountRepo repositories.AccountRepository,
	prefRepo repositories.PreferenceRepository,
	chatRepo repositories.ChatRepository,
	cfg config.Config,
) services.ContextServiceInterface {
	return services.NewContextService(groupRepo, accountRepo, prefRepo, chatRepo, cfg.ChatHistoryLimit)
}

func provideToolDispatcher(
	priceClient services.PriceSearchInterface,
	tripRepo repositories.TripRepository,
	cfg config.Config,
) services.ToolDispatcherInterface {
	return services.NewToolDispatcher(priceClient, tripRepo, cfg.ToolTimeout)
}

func provideAgentService(
	contextService services.ContextServiceInterface,
	dispatcher services.ToolDispatcherInterface,
	llm utils.CompletionClientInterface,
	tripRepo repositories.TripRepository,
	locks triplock.KeyedLocker,
	cfg config.Config,
) services.AgentServiceInterface {
	return services.NewAgentService(contextService, dispatcher, llm, tripRepo, locks, cfg)
}
