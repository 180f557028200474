package normalize

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMapRowAcceptsBothJoinShapes(t *testing.T) {
	base := Row{
		ID:        "c-1",
		UserID:    "u-1",
		Name:      "Spring Launch",
		Status:    "active",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	object := base
	object.Clients = json.RawMessage(`{"name": "Acme"}`)
	if got := MapRow(object).ClientName; got != "Acme" {
		t.Fatalf("object join: expected Acme, got %q", got)
	}

	array := base
	array.Clients = json.RawMessage(`[{"name": "Acme"}]`)
	if got := MapRow(array).ClientName; got != "Acme" {
		t.Fatalf("array join: expected Acme, got %q", got)
	}

	none := base
	if got := MapRow(none).ClientName; got != "" {
		t.Fatalf("missing join: expected empty name, got %q", got)
	}
}

func TestMapRowRendersDateOnlyStrings(t *testing.T) {
	end := time.Date(2024, 4, 1, 18, 30, 0, 0, time.FixedZone("plus5", 5*3600))
	row := Row{
		ID:        "c-1",
		UserID:    "u-1",
		StartDate: time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC),
		EndDate:   &end,
	}
	campaign := MapRow(row)
	if campaign.StartDate != "2024-03-01" {
		t.Fatalf("expected date-only start, got %s", campaign.StartDate)
	}
	if campaign.EndDate == nil || *campaign.EndDate != "2024-04-01" {
		t.Fatalf("expected UTC date-only end, got %v", campaign.EndDate)
	}
}

func TestMapRowMilestoneAndMetadataDefaults(t *testing.T) {
	campaign := MapRow(Row{ID: "c-1", UserID: "u-1", StartDate: time.Now()})
	if campaign.Milestones == nil || len(campaign.Milestones) != 0 {
		t.Fatalf("expected empty milestone slice, got %v", campaign.Milestones)
	}
	if campaign.Metadata != nil {
		t.Fatalf("expected nil metadata, got %v", campaign.Metadata)
	}

	withData := MapRow(Row{
		ID:         "c-2",
		UserID:     "u-1",
		StartDate:  time.Now(),
		Milestones: json.RawMessage(`[{"id":"m-1","label":"Kickoff","date":"2024-03-01","status":"pending"}]`),
		Metadata:   json.RawMessage(`{"channel":"instagram"}`),
	})
	if len(withData.Milestones) != 1 || withData.Milestones[0].Label != "Kickoff" {
		t.Fatalf("expected decoded milestone, got %v", withData.Milestones)
	}
	if withData.Metadata["channel"] != "instagram" {
		t.Fatalf("expected metadata passthrough, got %v", withData.Metadata)
	}
}
