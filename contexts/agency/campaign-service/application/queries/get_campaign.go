package queries

import (
	"context"
	"log/slog"
	"strings"

	"socialdesk/contexts/agency/campaign-service/domain/entities"
	domainerrors "socialdesk/contexts/agency/campaign-service/domain/errors"
	"socialdesk/contexts/agency/campaign-service/ports"
)

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, userID string, campaignID string) (entities.Campaign, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.Campaign{}, domainerrors.ErrOwnerRequired
	}
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(userID), strings.TrimSpace(campaignID))
}
