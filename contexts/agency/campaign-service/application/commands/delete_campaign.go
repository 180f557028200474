package commands

import (
	"context"
	"log/slog"
	"strings"

	application "socialdesk/contexts/agency/campaign-service/application"
	domainerrors "socialdesk/contexts/agency/campaign-service/domain/errors"
	"socialdesk/contexts/agency/campaign-service/ports"
)

type DeleteCampaignCommand struct {
	UserID     string
	CampaignID string
}

type DeleteCampaignUseCase struct {
	Campaigns   ports.CampaignRepository
	Events      ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc DeleteCampaignUseCase) Execute(ctx context.Context, cmd DeleteCampaignCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return domainerrors.ErrOwnerRequired
	}

	campaignID := strings.TrimSpace(cmd.CampaignID)
	if err := uc.Campaigns.DeleteCampaign(ctx, userID, campaignID); err != nil {
		return err
	}

	publishEvent(ctx, uc.Events, uc.IDGenerator, ports.Event{
		EventType:  "campaign.deleted",
		CampaignID: campaignID,
		UserID:     userID,
		OccurredAt: uc.Clock.Now().UTC(),
	}, logger)

	logger.Info("campaign deleted",
		"event", "campaign_deleted",
		"module", "agency/campaign-service",
		"layer", "application",
		"campaign_id", campaignID,
		"user_id", userID,
	)
	return nil
}
