package queries

import (
	"context"
	"log/slog"
	"strings"

	application "socialdesk/contexts/agency/campaign-service/application"
	"socialdesk/contexts/agency/campaign-service/domain/entities"
	domainerrors "socialdesk/contexts/agency/campaign-service/domain/errors"
	"socialdesk/contexts/agency/campaign-service/domain/normalize"
	"socialdesk/contexts/agency/campaign-service/ports"
)

type ListCampaignsQuery struct {
	UserID  string
	Request normalize.QueryRequest
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) ([]entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(query.UserID)
	if userID == "" {
		return nil, domainerrors.ErrOwnerRequired
	}

	parsed, err := normalize.ParseQuery(query.Request)
	if err != nil {
		return nil, err
	}

	items, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		UserID:   userID,
		ClientID: parsed.ClientID,
		Status:   parsed.Status,
		From:     parsed.From,
		To:       parsed.To,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("campaigns listed",
		"event", "campaigns_listed",
		"module", "agency/campaign-service",
		"layer", "application",
		"user_id", userID,
		"count", len(items),
	)
	return items, nil
}
