package normalize

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"socialdesk/contexts/agency/campaign-service/domain/entities"
)

func expectValidation(t *testing.T, err error, path string, message string) {
	t.Helper()
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Path != path {
		t.Fatalf("expected path %q, got %q", path, validation.Path)
	}
	if validation.Message != message {
		t.Fatalf("expected message %q, got %q", message, validation.Message)
	}
}

func strPtr(value string) *string {
	return &value
}

func TestParseCreateDefaultsStatusToPlanned(t *testing.T) {
	input, err := ParseCreate(CreateRequest{
		Name:      "Spring Launch",
		StartDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("parse create failed: %v", err)
	}
	if input.Status != entities.CampaignStatusPlanned {
		t.Fatalf("expected planned status, got %s", input.Status)
	}
	if input.StartDate != "2024-01-01" {
		t.Fatalf("expected canonical start date, got %s", input.StartDate)
	}
	if len(input.Milestones) != 0 {
		t.Fatalf("expected milestones left empty for caller synthesis, got %d", len(input.Milestones))
	}
}

func TestParseCreateRejectsShortName(t *testing.T) {
	_, err := ParseCreate(CreateRequest{Name: "ab", StartDate: "2024-01-01"})
	expectValidation(t, err, "name", "Name must be between 3 and 180 characters")
}

func TestParseCreateCountsNameInCharacters(t *testing.T) {
	// 180 three-byte runes: over the limit if counted in bytes.
	name := strings.Repeat("日", 180)
	input, err := ParseCreate(CreateRequest{Name: name, StartDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("expected 180-character name to pass, got %v", err)
	}
	if input.Name != name {
		t.Fatalf("unexpected name: %q", input.Name)
	}

	_, err = ParseCreate(CreateRequest{Name: strings.Repeat("日", 181), StartDate: "2024-01-01"})
	expectValidation(t, err, "name", "Name must be between 3 and 180 characters")

	// Two runes spanning six bytes still fall short of the minimum.
	_, err = ParseCreate(CreateRequest{Name: "日本", StartDate: "2024-01-01"})
	expectValidation(t, err, "name", "Name must be between 3 and 180 characters")
}

func TestParseCreateRejectsEndBeforeStart(t *testing.T) {
	_, err := ParseCreate(CreateRequest{
		Name:      "Spring Launch",
		StartDate: "2024-03-10",
		EndDate:   strPtr("2024-03-01"),
	})
	expectValidation(t, err, "endDate", "Wrap-up date must come after the kickoff date")
}

func TestParseCreateAllowsEqualStartAndEnd(t *testing.T) {
	input, err := ParseCreate(CreateRequest{
		Name:      "One Day Push",
		StartDate: "2024-03-10",
		EndDate:   strPtr("2024-03-10"),
	})
	if err != nil {
		t.Fatalf("parse create failed: %v", err)
	}
	if input.EndDate == nil || *input.EndDate != "2024-03-10" {
		t.Fatalf("expected end date 2024-03-10, got %v", input.EndDate)
	}
}

func TestParseCreateUnassignedClientVariants(t *testing.T) {
	for name, clientID := range map[string]*string{
		"absent": nil,
		"empty":  strPtr(""),
		"blank":  strPtr("   "),
	} {
		input, err := ParseCreate(CreateRequest{
			Name:      "Spring Launch",
			StartDate: "2024-01-01",
			ClientID:  clientID,
		})
		if err != nil {
			t.Fatalf("%s: parse create failed: %v", name, err)
		}
		if input.ClientID != nil {
			t.Fatalf("%s: expected unassigned client, got %v", name, *input.ClientID)
		}
	}
}

func TestParseCreateRejectsMalformedClientID(t *testing.T) {
	_, err := ParseCreate(CreateRequest{
		Name:      "Spring Launch",
		StartDate: "2024-01-01",
		ClientID:  strPtr("not-a-uuid"),
	})
	expectValidation(t, err, "clientId", "Client id must be a valid UUID")
}

func TestDefaultMilestonesWithoutEndDate(t *testing.T) {
	milestones, err := NormalizeMilestones(nil, Bounds{StartDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(milestones) != 3 {
		t.Fatalf("expected 3 default milestones, got %d", len(milestones))
	}
	if milestones[0].Label != "Kickoff" || milestones[0].Date != "2024-01-01" {
		t.Fatalf("unexpected kickoff milestone: %+v", milestones[0])
	}
	if milestones[0].Status != entities.MilestoneStatusInProgress {
		t.Fatalf("expected kickoff in_progress, got %s", milestones[0].Status)
	}
	if milestones[1].Label != "Launch campaign assets" || milestones[1].Date != "2024-01-15" {
		t.Fatalf("unexpected launch milestone: %+v", milestones[1])
	}
	if milestones[2].Label != "Performance review" || milestones[2].Date != "2024-01-31" {
		t.Fatalf("unexpected review milestone: %+v", milestones[2])
	}
	if milestones[1].Status != entities.MilestoneStatusPending || milestones[2].Status != entities.MilestoneStatusPending {
		t.Fatalf("expected pending defaults after kickoff")
	}
}

func TestDefaultMilestonesWithEndDate(t *testing.T) {
	end := "2024-02-01"
	milestones, err := NormalizeMilestones(nil, Bounds{StartDate: "2024-01-01", EndDate: &end})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if milestones[1].Date != "2024-02-01" {
		t.Fatalf("expected launch on wrap-up date, got %s", milestones[1].Date)
	}
	if milestones[2].Date != "2024-02-08" {
		t.Fatalf("expected review a week after wrap-up, got %s", milestones[2].Date)
	}
}

func TestNormalizeMilestonesSortsStable(t *testing.T) {
	milestones, err := NormalizeMilestones([]MilestoneInput{
		{Label: "Third", Date: "2024-03-05"},
		{Label: "First", Date: "2024-03-01"},
		{Label: "Same day A", Date: "2024-03-03"},
		{Label: "Same day B", Date: "2024-03-03"},
	}, Bounds{StartDate: "2024-03-01"})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	labels := []string{milestones[0].Label, milestones[1].Label, milestones[2].Label, milestones[3].Label}
	expected := []string{"First", "Same day A", "Same day B", "Third"}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Fatalf("expected order %v, got %v", expected, labels)
		}
	}
}

func TestNormalizeMilestonesIsIdempotent(t *testing.T) {
	bounds := Bounds{StartDate: "2024-03-01"}
	first, err := NormalizeMilestones([]MilestoneInput{
		{Label: "Review", Date: "2024-03-20T10:30:00Z", Status: "weird"},
		{Label: "Draft", Date: "2024-03-05"},
	}, bounds)
	if err != nil {
		t.Fatalf("first normalize failed: %v", err)
	}

	back := make([]MilestoneInput, 0, len(first))
	for _, m := range first {
		back = append(back, MilestoneInput{ID: m.ID, Label: m.Label, Date: m.Date, Status: string(m.Status)})
	}
	second, err := NormalizeMilestones(back, bounds)
	if err != nil {
		t.Fatalf("second normalize failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("idempotence broken: %d vs %d entries", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("idempotence broken at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNormalizeMilestonesBoundsMessages(t *testing.T) {
	end := "2024-03-10"
	_, err := NormalizeMilestones([]MilestoneInput{
		{Label: "Too early", Date: "2024-02-28"},
	}, Bounds{StartDate: "2024-03-01", EndDate: &end})
	expectValidation(t, err, "milestones[0].date", "Milestones must occur on or after the kickoff date")

	_, err = NormalizeMilestones([]MilestoneInput{
		{Label: "Too late", Date: "2024-03-11"},
	}, Bounds{StartDate: "2024-03-01", EndDate: &end})
	expectValidation(t, err, "milestones[0].date", "Milestones must occur on or before the wrap-up date")
}

func TestNormalizeMilestonesCoercesUnknownStatus(t *testing.T) {
	milestones, err := NormalizeMilestones([]MilestoneInput{
		{Label: "Checkpoint", Date: "2024-03-05", Status: "blocked"},
	}, Bounds{StartDate: "2024-03-01"})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if milestones[0].Status != entities.MilestoneStatusPending {
		t.Fatalf("expected pending coercion, got %s", milestones[0].Status)
	}
}

func TestNormalizeMilestonesSynthesizesIDs(t *testing.T) {
	milestones, err := NormalizeMilestones([]MilestoneInput{
		{ID: "keep-me", Label: "Existing", Date: "2024-03-05"},
		{Label: "Fresh", Date: "2024-03-06"},
	}, Bounds{StartDate: "2024-03-01"})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if milestones[0].ID != "keep-me" {
		t.Fatalf("expected provided id preserved, got %s", milestones[0].ID)
	}
	if milestones[1].ID == "" {
		t.Fatalf("expected synthesized id for entry without one")
	}
}

func TestNormalizeMilestonesRejectsTooMany(t *testing.T) {
	entries := make([]MilestoneInput, 21)
	for i := range entries {
		entries[i] = MilestoneInput{Label: "Checkpoint", Date: "2024-03-05"}
	}
	_, err := NormalizeMilestones(entries, Bounds{StartDate: "2024-03-01"})
	expectValidation(t, err, "milestones", "A campaign can have at most 20 milestones")
}

func TestToDateOnlyUsesUTCCalendarDay(t *testing.T) {
	parsed, ok := ParseDate("2024-03-05T23:00:00+05:00")
	if !ok {
		t.Fatalf("expected timestamp to parse")
	}
	if got := ToDateOnly(parsed); got != "2024-03-05" {
		t.Fatalf("expected 2024-03-05, got %s", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2024-13-40", "05/03/2024"} {
		if _, ok := ParseDate(raw); ok {
			t.Fatalf("expected %q to fail parsing", raw)
		}
	}
}

func TestParseUpdateRequiresAtLeastOneField(t *testing.T) {
	_, err := ParseUpdate(UpdateRequest{})
	expectValidation(t, err, "", "Provide at least one field to update")
}

func TestParseUpdateDistinguishesOmitFromNull(t *testing.T) {
	var req UpdateRequest
	if err := json.Unmarshal([]byte(`{"endDate": null, "name": "New Name"}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	update, err := ParseUpdate(req)
	if err != nil {
		t.Fatalf("parse update failed: %v", err)
	}
	if !update.EndDateSet || update.EndDate != nil {
		t.Fatalf("expected explicit end date clear, got set=%v value=%v", update.EndDateSet, update.EndDate)
	}
	if update.Name == nil || *update.Name != "New Name" {
		t.Fatalf("expected name update, got %v", update.Name)
	}
	if update.ClientIDSet {
		t.Fatalf("omitted clientId must not be marked set")
	}
}

func TestParseUpdateClearsClientAssignment(t *testing.T) {
	var req UpdateRequest
	if err := json.Unmarshal([]byte(`{"clientId": null}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	update, err := ParseUpdate(req)
	if err != nil {
		t.Fatalf("parse update failed: %v", err)
	}
	if !update.ClientIDSet || update.ClientID != nil {
		t.Fatalf("expected client unassignment, got set=%v value=%v", update.ClientIDSet, update.ClientID)
	}
}

func TestParseUpdateMilestonesAreSyntacticOnly(t *testing.T) {
	var req UpdateRequest
	payload := `{"milestones": [{"label": "Way out", "date": "1999-01-01"}]}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	update, err := ParseUpdate(req)
	if err != nil {
		t.Fatalf("expected bounds-free parse to pass, got %v", err)
	}
	if !update.MilestonesSet || len(update.Milestones) != 1 {
		t.Fatalf("expected one parsed milestone, got %+v", update.Milestones)
	}
}

func TestParseQueryRejectsInvertedRange(t *testing.T) {
	_, err := ParseQuery(QueryRequest{From: "2024-05-01", To: "2024-04-01"})
	expectValidation(t, err, "from", "The from date must be before the to date")
}

func TestParseQueryCanonicalizesFilters(t *testing.T) {
	query, err := ParseQuery(QueryRequest{
		Status: "active",
		From:   "2024-03-05T23:00:00+05:00",
	})
	if err != nil {
		t.Fatalf("parse query failed: %v", err)
	}
	if query.Status == nil || *query.Status != entities.CampaignStatusActive {
		t.Fatalf("expected active status filter")
	}
	if query.From == nil || *query.From != "2024-03-05" {
		t.Fatalf("expected canonical from date, got %v", query.From)
	}
}

func TestParseReorderValidation(t *testing.T) {
	_, err := ParseReorder(ReorderRequest{})
	expectValidation(t, err, "order", "Provide campaign ids to reorder")

	_, err = ParseReorder(ReorderRequest{Order: []string{"nope"}})
	expectValidation(t, err, "order[0]", "Campaign id must be a valid UUID")
}

func TestValidateBoundsOrdering(t *testing.T) {
	end := "2024-01-01"
	err := ValidateBounds(Bounds{StartDate: "2024-02-01", EndDate: &end})
	expectValidation(t, err, "endDate", "Wrap-up date must come after the kickoff date")

	if err := ValidateBounds(Bounds{StartDate: "2024-01-01", EndDate: &end}); err != nil {
		t.Fatalf("equal dates must be valid, got %v", err)
	}
}
