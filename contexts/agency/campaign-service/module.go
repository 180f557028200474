package campaignservice

import (
	"log/slog"

	httpadapter "socialdesk/contexts/agency/campaign-service/adapters/http"
	"socialdesk/contexts/agency/campaign-service/adapters/memory"
	"socialdesk/contexts/agency/campaign-service/application/commands"
	"socialdesk/contexts/agency/campaign-service/application/queries"
	"socialdesk/contexts/agency/campaign-service/domain/entities"
	"socialdesk/contexts/agency/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns   ports.CampaignRepository
	Events      ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign: commands.CreateCampaignUseCase{
				Campaigns:   deps.Campaigns,
				Events:      deps.Events,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			UpdateCampaign: commands.UpdateCampaignUseCase{
				Campaigns:   deps.Campaigns,
				Events:      deps.Events,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			DeleteCampaign: commands.DeleteCampaignUseCase{
				Campaigns:   deps.Campaigns,
				Events:      deps.Events,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			ReorderCampaigns: commands.ReorderCampaignsUseCase{
				Campaigns:   deps.Campaigns,
				Events:      deps.Events,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			ListCampaigns: queries.ListCampaignsUseCase{
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			GetCampaign: queries.GetCampaignUseCase{
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns:   store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
