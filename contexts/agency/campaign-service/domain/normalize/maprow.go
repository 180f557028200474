package normalize

import (
	"encoding/json"
	"time"

	"socialdesk/contexts/agency/campaign-service/domain/entities"
)

// Row is a stored campaign as it comes back from the data store, before any
// canonicalization. Milestones and metadata arrive as raw JSON columns; the
// joined client relation may arrive as a single object or a one-element
// array depending on how the store shaped the join.
type Row struct {
	ID          string
	UserID      string
	ClientID    *string
	Name        string
	Description string
	Status      string
	StartDate   time.Time
	EndDate     *time.Time
	Position    int
	Milestones  json.RawMessage
	Metadata    json.RawMessage
	Clients     json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type clientJoin struct {
	Name string `json:"name"`
}

// MapRow turns a stored row into the campaign view model. Date columns are
// re-rendered to date-only strings, defending against a store that returns
// full timestamps; absent milestone JSON becomes an empty sequence;
// metadata passes through verbatim.
func MapRow(row Row) entities.Campaign {
	campaign := entities.Campaign{
		CampaignID:  row.ID,
		UserID:      row.UserID,
		ClientID:    row.ClientID,
		ClientName:  clientNameFromJoin(row.Clients),
		Name:        row.Name,
		Description: row.Description,
		Status:      entities.CampaignStatus(row.Status),
		StartDate:   ToDateOnly(row.StartDate),
		Position:    row.Position,
		Milestones:  decodeMilestones(row.Milestones),
		Metadata:    decodeMetadata(row.Metadata),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.EndDate != nil {
		endDate := ToDateOnly(*row.EndDate)
		campaign.EndDate = &endDate
	}
	return campaign
}

// clientNameFromJoin accepts both join shapes: {"name": ...} and
// [{"name": ...}].
func clientNameFromJoin(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single clientJoin
	if err := json.Unmarshal(raw, &single); err == nil && single.Name != "" {
		return single.Name
	}
	var many []clientJoin
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0].Name
	}
	return ""
}

func decodeMilestones(raw json.RawMessage) []entities.Milestone {
	milestones := make([]entities.Milestone, 0)
	if len(raw) == 0 {
		return milestones
	}
	if err := json.Unmarshal(raw, &milestones); err != nil {
		return make([]entities.Milestone, 0)
	}
	if milestones == nil {
		return make([]entities.Milestone, 0)
	}
	return milestones
}

func decodeMetadata(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var metadata map[string]any
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil
	}
	return metadata
}
