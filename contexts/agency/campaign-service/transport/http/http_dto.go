package http

import "socialdesk/contexts/agency/campaign-service/domain/normalize"

// ErrorResponse is the wire error shape: the first validation issue's
// message, or a generic message for internal failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Request bodies decode straight into the normalizer's typed schemas so
// partial-update presence tracking (Optional fields) happens at decode
// time.
type CreateCampaignRequest = normalize.CreateRequest
type UpdateCampaignRequest = normalize.UpdateRequest
type ReorderCampaignsRequest = normalize.ReorderRequest

type MilestoneDTO struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type CampaignDTO struct {
	ID          string         `json:"id"`
	ClientID    *string        `json:"clientId"`
	ClientName  string         `json:"clientName,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"`
	StartDate   string         `json:"startDate"`
	EndDate     *string        `json:"endDate"`
	Position    int            `json:"position"`
	Milestones  []MilestoneDTO `json:"milestones"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type CampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ListCampaignsResponse struct {
	Data []CampaignDTO `json:"data"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
