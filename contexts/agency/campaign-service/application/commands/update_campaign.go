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

type UpdateCampaignCommand struct {
	UserID     string
	CampaignID string
	Request    normalize.UpdateRequest
}

type UpdateCampaignUseCase struct {
	Campaigns   ports.CampaignRepository
	Events      ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute merges a validated partial update into the stored row, then runs
// the semantic checks a pure parse cannot: effective kickoff/wrap-up
// ordering, and milestone bounds against the merged dates. Concurrent
// updates to the same campaign resolve last-write-wins at the store.
func (uc UpdateCampaignUseCase) Execute(ctx context.Context, cmd UpdateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return entities.Campaign{}, domainerrors.ErrOwnerRequired
	}

	update, err := normalize.ParseUpdate(cmd.Request)
	if err != nil {
		return entities.Campaign{}, err
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, userID, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}

	if update.Name != nil {
		campaign.Name = *update.Name
	}
	if update.ClientIDSet {
		campaign.ClientID = update.ClientID
	}
	if update.Status != nil {
		campaign.Status = *update.Status
	}
	if update.StartDate != nil {
		campaign.StartDate = *update.StartDate
	}
	if update.EndDateSet {
		campaign.EndDate = update.EndDate
	}
	if update.DescriptionSet {
		campaign.Description = ""
		if update.Description != nil {
			campaign.Description = *update.Description
		}
	}
	if update.MetadataSet {
		campaign.Metadata = update.Metadata
	}

	bounds := normalize.Bounds{StartDate: campaign.StartDate, EndDate: campaign.EndDate}
	if err := normalize.ValidateBounds(bounds); err != nil {
		return entities.Campaign{}, err
	}

	// Milestones are replaced wholesale when provided. When only the bounds
	// moved, the stored milestones are re-normalized so every date still
	// falls inside the new window.
	boundsChanged := update.StartDate != nil || update.EndDateSet
	if update.MilestonesSet {
		milestones, err := normalize.NormalizeMilestones(update.Milestones, bounds)
		if err != nil {
			return entities.Campaign{}, err
		}
		campaign.Milestones = milestones
	} else if boundsChanged && len(campaign.Milestones) > 0 {
		milestones, err := normalize.NormalizeMilestones(milestoneInputs(campaign.Milestones), bounds)
		if err != nil {
			return entities.Campaign{}, err
		}
		campaign.Milestones = milestones
	}

	campaign.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	// Re-fetch so the denormalized client name reflects a changed
	// assignment.
	updated, err := uc.Campaigns.GetCampaign(ctx, userID, campaign.CampaignID)
	if err != nil {
		return entities.Campaign{}, err
	}

	publishEvent(ctx, uc.Events, uc.IDGenerator, ports.Event{
		EventType:  "campaign.updated",
		CampaignID: campaign.CampaignID,
		UserID:     userID,
		OccurredAt: campaign.UpdatedAt,
	}, logger)

	logger.Info("campaign updated",
		"event", "campaign_updated",
		"module", "agency/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"user_id", userID,
	)
	return updated, nil
}

func milestoneInputs(milestones []entities.Milestone) []normalize.MilestoneInput {
	inputs := make([]normalize.MilestoneInput, 0, len(milestones))
	for _, item := range milestones {
		inputs = append(inputs, normalize.MilestoneInput{
			ID:     item.ID,
			Label:  item.Label,
			Date:   item.Date,
			Status: string(item.Status),
		})
	}
	return inputs
}
