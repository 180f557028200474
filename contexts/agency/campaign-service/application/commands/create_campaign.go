package commands

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

type CreateCampaignCommand struct {
	UserID  string
	Request normalize.CreateRequest
}

type CreateCampaignUseCase struct {
	Campaigns   ports.CampaignRepository
	Events      ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return entities.Campaign{}, domainerrors.ErrOwnerRequired
	}

	input, err := normalize.ParseCreate(cmd.Request)
	if err != nil {
		return entities.Campaign{}, err
	}

	milestones := input.Milestones
	if len(milestones) == 0 {
		milestones, err = normalize.NormalizeMilestones(nil, normalize.Bounds{
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		})
		if err != nil {
			return entities.Campaign{}, err
		}
	}

	position, err := uc.Campaigns.NextPosition(ctx, userID)
	if err != nil {
		return entities.Campaign{}, err
	}
	campaignID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	now := uc.Clock.Now().UTC()

	campaign := entities.Campaign{
		CampaignID:  campaignID,
		UserID:      userID,
		ClientID:    input.ClientID,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Position:    position,
		Milestones:  milestones,
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}
	// Re-fetch so an assigned client comes back with its joined name.
	if stored, err := uc.Campaigns.GetCampaign(ctx, userID, campaign.CampaignID); err == nil {
		campaign = stored
	}

	publishEvent(ctx, uc.Events, uc.IDGenerator, ports.Event{
		EventType:  "campaign.created",
		CampaignID: campaign.CampaignID,
		UserID:     userID,
		OccurredAt: now,
	}, logger)

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "agency/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"user_id", userID,
		"milestone_count", len(campaign.Milestones),
	)
	return campaign, nil
}

// publishEvent is fire-and-forget: change notifications carry no delivery
// guarantee, so publish failures are logged and swallowed.
func publishEvent(
	ctx context.Context,
	events ports.EventPublisher,
	idgen ports.IDGenerator,
	event ports.Event,
	logger *slog.Logger,
) {
	if events == nil {
		return
	}
	if eventID, err := idgen.NewID(ctx); err == nil {
		event.EventID = eventID
	}
	if err := events.Publish(ctx, ports.CampaignEventsTopic, event); err != nil {
		logger.Warn("campaign event publish failed",
			"event", "campaign_event_publish_failed",
			"module", "agency/campaign-service",
			"layer", "application",
			"event_type", event.EventType,
			"error", err.Error(),
		)
	}
}
