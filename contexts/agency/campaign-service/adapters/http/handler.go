package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"socialdesk/contexts/agency/campaign-service/application/commands"
	"socialdesk/contexts/agency/campaign-service/application/queries"
	"socialdesk/contexts/agency/campaign-service/domain/entities"
	"socialdesk/contexts/agency/campaign-service/domain/normalize"
	httptransport "socialdesk/contexts/agency/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign   commands.CreateCampaignUseCase
	UpdateCampaign   commands.UpdateCampaignUseCase
	DeleteCampaign   commands.DeleteCampaignUseCase
	ReorderCampaigns commands.ReorderCampaignsUseCase
	ListCampaigns    queries.ListCampaignsUseCase
	GetCampaign      queries.GetCampaignUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CampaignResponse, error) {
	campaign, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		UserID:  userID,
		Request: req,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ListCampaignsHandler(
	ctx context.Context,
	userID string,
	req normalize.QueryRequest,
) (httptransport.ListCampaignsResponse, error) {
	items, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		UserID:  userID,
		Request: req,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	data := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		data = append(data, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Data: data}, nil
}

func (h Handler) GetCampaignHandler(
	ctx context.Context,
	userID string,
	campaignID string,
) (httptransport.CampaignResponse, error) {
	campaign, err := h.GetCampaign.Execute(ctx, userID, campaignID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) UpdateCampaignHandler(
	ctx context.Context,
	userID string,
	campaignID string,
	req httptransport.UpdateCampaignRequest,
) (httptransport.CampaignResponse, error) {
	campaign, err := h.UpdateCampaign.Execute(ctx, commands.UpdateCampaignCommand{
		UserID:     userID,
		CampaignID: campaignID,
		Request:    req,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) DeleteCampaignHandler(ctx context.Context, userID string, campaignID string) error {
	return h.DeleteCampaign.Execute(ctx, commands.DeleteCampaignCommand{
		UserID:     userID,
		CampaignID: campaignID,
	})
}

func (h Handler) ReorderCampaignsHandler(
	ctx context.Context,
	userID string,
	req httptransport.ReorderCampaignsRequest,
) error {
	return h.ReorderCampaigns.Execute(ctx, commands.ReorderCampaignsCommand{
		UserID:  userID,
		Request: req,
	})
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	milestones := make([]httptransport.MilestoneDTO, 0, len(item.Milestones))
	for _, m := range item.Milestones {
		milestones = append(milestones, httptransport.MilestoneDTO{
			ID:     m.ID,
			Label:  m.Label,
			Date:   m.Date,
			Status: string(m.Status),
		})
	}
	return httptransport.CampaignDTO{
		ID:          item.CampaignID,
		ClientID:    item.ClientID,
		ClientName:  item.ClientName,
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
		StartDate:   item.StartDate,
		EndDate:     item.EndDate,
		Position:    item.Position,
		Milestones:  milestones,
		Metadata:    item.Metadata,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
