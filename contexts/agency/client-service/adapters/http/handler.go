package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"socialdesk/contexts/agency/client-service/application"
	"socialdesk/contexts/agency/client-service/domain/entities"
	httptransport "socialdesk/contexts/agency/client-service/transport/http"
)

type Handler struct {
	Clients application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateClientHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateClientRequest,
) (httptransport.ClientResponse, error) {
	client, err := h.Clients.CreateClient(ctx, userID, application.ClientInput{
		Name:    req.Name,
		Contact: stringValue(req.Contact),
		Notes:   stringValue(req.Notes),
	})
	if err != nil {
		return httptransport.ClientResponse{}, err
	}
	return httptransport.ClientResponse{Client: mapClient(client)}, nil
}

func (h Handler) ListClientsHandler(ctx context.Context, userID string) (httptransport.ListClientsResponse, error) {
	items, err := h.Clients.ListClients(ctx, userID)
	if err != nil {
		return httptransport.ListClientsResponse{}, err
	}
	data := make([]httptransport.ClientDTO, 0, len(items))
	for _, item := range items {
		data = append(data, mapClient(item))
	}
	return httptransport.ListClientsResponse{Data: data}, nil
}

func (h Handler) GetClientHandler(ctx context.Context, userID string, clientID string) (httptransport.ClientResponse, error) {
	client, err := h.Clients.GetClient(ctx, userID, clientID)
	if err != nil {
		return httptransport.ClientResponse{}, err
	}
	return httptransport.ClientResponse{Client: mapClient(client)}, nil
}

func (h Handler) UpdateClientHandler(
	ctx context.Context,
	userID string,
	clientID string,
	req httptransport.UpdateClientRequest,
) (httptransport.ClientResponse, error) {
	client, err := h.Clients.UpdateClient(ctx, userID, clientID, application.ClientUpdate{
		Name:    req.Name,
		Contact: req.Contact,
		Notes:   req.Notes,
	})
	if err != nil {
		return httptransport.ClientResponse{}, err
	}
	return httptransport.ClientResponse{Client: mapClient(client)}, nil
}

func (h Handler) DeleteClientHandler(ctx context.Context, userID string, clientID string) error {
	return h.Clients.DeleteClient(ctx, userID, clientID)
}

func mapClient(item entities.Client) httptransport.ClientDTO {
	return httptransport.ClientDTO{
		ID:        item.ClientID,
		Name:      item.Name,
		Contact:   item.Contact,
		Notes:     item.Notes,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
