package clientservice

import (
	"log/slog"

	httpadapter "socialdesk/contexts/agency/client-service/adapters/http"
	"socialdesk/contexts/agency/client-service/adapters/memory"
	"socialdesk/contexts/agency/client-service/application"
	"socialdesk/contexts/agency/client-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Clients     ports.ClientRepository
	Crypt       ports.Encryptor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Clients: application.Service{
				Repo:        deps.Clients,
				Crypt:       deps.Crypt,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(crypt ports.Encryptor, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Clients:     store,
		Crypt:       crypt,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
