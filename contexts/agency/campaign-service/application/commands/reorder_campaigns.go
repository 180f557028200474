package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "socialdesk/contexts/agency/campaign-service/application"
	domainerrors "socialdesk/contexts/agency/campaign-service/domain/errors"
	"socialdesk/contexts/agency/campaign-service/domain/normalize"
	"socialdesk/contexts/agency/campaign-service/ports"
)

type ReorderCampaignsCommand struct {
	UserID  string
	Request normalize.ReorderRequest
}

type ReorderCampaignsUseCase struct {
	Campaigns   ports.CampaignRepository
	Events      ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute assigns positions 1..N in the order given, one store write per
// id. The operation is not transactional: a failure partway through leaves
// the earlier writes applied and is reported as a single error for the
// whole operation. Callers recover by reissuing the full order.
func (uc ReorderCampaignsUseCase) Execute(ctx context.Context, cmd ReorderCampaignsCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return domainerrors.ErrOwnerRequired
	}

	input, err := normalize.ParseReorder(cmd.Request)
	if err != nil {
		return err
	}

	for i, campaignID := range input.Order {
		if err := uc.Campaigns.SetPosition(ctx, userID, campaignID, i+1); err != nil {
			logger.Error("campaign reorder aborted",
				"event", "campaign_reorder_aborted",
				"module", "agency/campaign-service",
				"layer", "application",
				"campaign_id", campaignID,
				"applied", i,
				"total", len(input.Order),
				"error", err.Error(),
			)
			return fmt.Errorf("reorder campaign %s: %w", campaignID, err)
		}
	}

	publishEvent(ctx, uc.Events, uc.IDGenerator, ports.Event{
		EventType:  "campaign.reordered",
		UserID:     userID,
		OccurredAt: uc.Clock.Now().UTC(),
	}, logger)

	logger.Info("campaigns reordered",
		"event", "campaigns_reordered",
		"module", "agency/campaign-service",
		"layer", "application",
		"user_id", userID,
		"count", len(input.Order),
	)
	return nil
}
