// Package normalize validates and normalizes untrusted campaign payloads
// into canonical domain values. Everything here is pure and synchronous:
// no I/O, no state between calls. Validation is fail-fast, surfacing only
// the first violation as a *ValidationError.
package normalize

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"socialdesk/contexts/agency/campaign-service/domain/entities"
)

const (
	nameMinLen        = 3
	nameMaxLen        = 180
	descriptionMaxLen = 2000
	labelMinLen       = 2
	labelMaxLen       = 160
	maxMilestones     = 20
)

const (
	msgName            = "Name must be between 3 and 180 characters"
	msgClientID        = "Client id must be a valid UUID"
	msgStatus          = "Status must be one of planned, active, paused, completed, archived"
	msgStartDate       = "Kickoff date must be a valid calendar date"
	msgEndDate         = "Wrap-up date must be a valid calendar date"
	msgEndBeforeStart  = "Wrap-up date must come after the kickoff date"
	msgDescription     = "Description must be 2000 characters or fewer"
	msgTooMany         = "A campaign can have at most 20 milestones"
	msgLabel           = "Milestone label must be between 2 and 160 characters"
	msgMilestoneDate   = "Milestone date must be a valid calendar date"
	msgMilestoneBefore = "Milestones must occur on or after the kickoff date"
	msgMilestoneAfter  = "Milestones must occur on or before the wrap-up date"
	msgNoFields        = "Provide at least one field to update"
	msgQueryRange      = "The from date must be before the to date"
	msgReorderEmpty    = "Provide campaign ids to reorder"
	msgReorderEntry    = "Campaign id must be a valid UUID"
)

// MilestoneInput is the wire shape of a milestone entry before validation.
type MilestoneInput struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type CreateRequest struct {
	Name        string           `json:"name"`
	ClientID    *string          `json:"clientId"`
	Status      string           `json:"status"`
	StartDate   string           `json:"startDate"`
	EndDate     *string          `json:"endDate"`
	Description *string          `json:"description"`
	Milestones  []MilestoneInput `json:"milestones"`
	Metadata    map[string]any   `json:"metadata"`
}

// CampaignInput is a fully validated create payload. All dates are
// canonical YYYY-MM-DD strings.
type CampaignInput struct {
	Name        string
	ClientID    *string
	Status      entities.CampaignStatus
	StartDate   string
	EndDate     *string
	Description string
	Milestones  []entities.Milestone
	Metadata    map[string]any
}

// ParseCreate validates a campaign creation payload field by field, in a
// fixed order, failing on the first violation. Provided milestones are
// normalized against the just-validated kickoff/wrap-up bounds; an empty
// list is left empty here and synthesized into defaults by the caller.
func ParseCreate(req CreateRequest) (CampaignInput, error) {
	name, err := parseName(req.Name)
	if err != nil {
		return CampaignInput{}, err
	}
	clientID, err := parseClientID(req.ClientID)
	if err != nil {
		return CampaignInput{}, err
	}
	status, err := parseStatus(req.Status, true)
	if err != nil {
		return CampaignInput{}, err
	}
	start, ok := ParseDate(req.StartDate)
	if !ok {
		return CampaignInput{}, invalid("startDate", msgStartDate)
	}
	startDate := ToDateOnly(start)

	var endDate *string
	if req.EndDate != nil && strings.TrimSpace(*req.EndDate) != "" {
		end, ok := ParseDate(*req.EndDate)
		if !ok {
			return CampaignInput{}, invalid("endDate", msgEndDate)
		}
		canonical := ToDateOnly(end)
		if dateBefore(canonical, startDate) {
			return CampaignInput{}, invalid("endDate", msgEndBeforeStart)
		}
		endDate = &canonical
	}

	description, err := parseDescription(req.Description)
	if err != nil {
		return CampaignInput{}, err
	}

	input := CampaignInput{
		Name:        name,
		ClientID:    clientID,
		Status:      status,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: description,
		Metadata:    req.Metadata,
	}
	if len(req.Milestones) > 0 {
		milestones, err := NormalizeMilestones(req.Milestones, Bounds{StartDate: startDate, EndDate: endDate})
		if err != nil {
			return CampaignInput{}, err
		}
		input.Milestones = milestones
	}
	return input, nil
}

type UpdateRequest struct {
	Name        Optional[string]           `json:"name"`
	ClientID    Optional[string]           `json:"clientId"`
	Status      Optional[string]           `json:"status"`
	StartDate   Optional[string]           `json:"startDate"`
	EndDate     Optional[string]           `json:"endDate"`
	Description Optional[string]           `json:"description"`
	Milestones  Optional[[]MilestoneInput] `json:"milestones"`
	Metadata    Optional[map[string]any]   `json:"metadata"`
}

// CampaignUpdate is a validated partial update. Nil pointers mean "leave
// unchanged"; the *Set flags distinguish "omit" from "set to null" for the
// nullable fields. Milestones are validated syntactically only — bounds
// checking needs the effective kickoff/wrap-up dates, which the caller
// resolves against the stored row before persisting.
type CampaignUpdate struct {
	Name           *string
	ClientID       *string
	ClientIDSet    bool
	Status         *entities.CampaignStatus
	StartDate      *string
	EndDate        *string
	EndDateSet     bool
	Description    *string
	DescriptionSet bool
	Milestones     []MilestoneInput
	MilestonesSet  bool
	Metadata       map[string]any
	MetadataSet    bool
}

// ParseUpdate applies the create-time field rules to whichever fields are
// present in the payload. Cross-field validation (new wrap-up date against
// the stored kickoff date, milestone bounds) is deliberately not performed
// here; the update use case re-fetches the row and re-normalizes with the
// merged bounds.
func ParseUpdate(req UpdateRequest) (CampaignUpdate, error) {
	var update CampaignUpdate
	touched := false

	if req.Name.Set {
		if !req.Name.Valid {
			return CampaignUpdate{}, invalid("name", msgName)
		}
		name, err := parseName(req.Name.Value)
		if err != nil {
			return CampaignUpdate{}, err
		}
		update.Name = &name
		touched = true
	}
	if req.ClientID.Set {
		update.ClientIDSet = true
		touched = true
		if req.ClientID.Valid {
			clientID, err := parseClientID(&req.ClientID.Value)
			if err != nil {
				return CampaignUpdate{}, err
			}
			update.ClientID = clientID
		}
	}
	if req.Status.Set {
		if !req.Status.Valid {
			return CampaignUpdate{}, invalid("status", msgStatus)
		}
		status, err := parseStatus(req.Status.Value, false)
		if err != nil {
			return CampaignUpdate{}, err
		}
		update.Status = &status
		touched = true
	}
	if req.StartDate.Set {
		if !req.StartDate.Valid {
			return CampaignUpdate{}, invalid("startDate", msgStartDate)
		}
		start, ok := ParseDate(req.StartDate.Value)
		if !ok {
			return CampaignUpdate{}, invalid("startDate", msgStartDate)
		}
		canonical := ToDateOnly(start)
		update.StartDate = &canonical
		touched = true
	}
	if req.EndDate.Set {
		update.EndDateSet = true
		touched = true
		if req.EndDate.Valid && strings.TrimSpace(req.EndDate.Value) != "" {
			end, ok := ParseDate(req.EndDate.Value)
			if !ok {
				return CampaignUpdate{}, invalid("endDate", msgEndDate)
			}
			canonical := ToDateOnly(end)
			update.EndDate = &canonical
		}
	}
	if req.Description.Set {
		update.DescriptionSet = true
		touched = true
		if req.Description.Valid {
			description, err := parseDescription(&req.Description.Value)
			if err != nil {
				return CampaignUpdate{}, err
			}
			update.Description = &description
		}
	}
	if req.Milestones.Set {
		update.MilestonesSet = true
		touched = true
		entries := req.Milestones.Value
		if len(entries) > maxMilestones {
			return CampaignUpdate{}, invalid("milestones", msgTooMany)
		}
		for i, entry := range entries {
			canonical, err := parseMilestoneEntry(i, entry)
			if err != nil {
				return CampaignUpdate{}, err
			}
			entries[i] = canonical
		}
		update.Milestones = entries
	}
	if req.Metadata.Set {
		update.MetadataSet = true
		touched = true
		if req.Metadata.Valid {
			update.Metadata = req.Metadata.Value
		}
	}

	if !touched {
		return CampaignUpdate{}, invalid("", msgNoFields)
	}
	return update, nil
}

type QueryRequest struct {
	ClientID string
	Status   string
	From     string
	To       string
}

type CampaignQuery struct {
	ClientID *string
	Status   *entities.CampaignStatus
	From     *string
	To       *string
}

// ParseQuery validates list filters. All filters are optional; an empty
// request is a valid unfiltered query.
func ParseQuery(req QueryRequest) (CampaignQuery, error) {
	var query CampaignQuery
	if value := strings.TrimSpace(req.ClientID); value != "" {
		if !isUUID(value) {
			return CampaignQuery{}, invalid("clientId", msgClientID)
		}
		query.ClientID = &value
	}
	if value := strings.TrimSpace(req.Status); value != "" {
		status := entities.CampaignStatus(value)
		if !entities.IsSupportedCampaignStatus(status) {
			return CampaignQuery{}, invalid("status", msgStatus)
		}
		query.Status = &status
	}
	if value := strings.TrimSpace(req.From); value != "" {
		parsed, ok := ParseDate(value)
		if !ok {
			return CampaignQuery{}, invalid("from", "From date must be a valid calendar date")
		}
		canonical := ToDateOnly(parsed)
		query.From = &canonical
	}
	if value := strings.TrimSpace(req.To); value != "" {
		parsed, ok := ParseDate(value)
		if !ok {
			return CampaignQuery{}, invalid("to", "To date must be a valid calendar date")
		}
		canonical := ToDateOnly(parsed)
		query.To = &canonical
	}
	if query.From != nil && query.To != nil && dateBefore(*query.To, *query.From) {
		return CampaignQuery{}, invalid("from", msgQueryRange)
	}
	return query, nil
}

type ReorderRequest struct {
	Order []string `json:"order"`
}

type ReorderInput struct {
	Order []string
}

// ParseReorder requires a non-empty list of UUID-shaped campaign ids; a
// malformed entry fails referencing its index.
func ParseReorder(req ReorderRequest) (ReorderInput, error) {
	if len(req.Order) == 0 {
		return ReorderInput{}, invalid("order", msgReorderEmpty)
	}
	order := make([]string, 0, len(req.Order))
	for i, raw := range req.Order {
		value := strings.TrimSpace(raw)
		if !isUUID(value) {
			return ReorderInput{}, invalid(indexedPath("order", i), msgReorderEntry)
		}
		order = append(order, value)
	}
	return ReorderInput{Order: order}, nil
}

// Bounds carries the effective kickoff/wrap-up dates milestones are
// normalized against, as canonical YYYY-MM-DD strings.
type Bounds struct {
	StartDate string
	EndDate   *string
}

// ValidateBounds applies the kickoff/wrap-up ordering rule to effective
// dates merged from a stored row and a partial update. ParseUpdate leaves
// this to the call site on purpose: the stored counterpart of a changed
// date is not visible to a pure parse.
func ValidateBounds(bounds Bounds) error {
	if bounds.EndDate != nil && dateBefore(*bounds.EndDate, bounds.StartDate) {
		return invalid("endDate", msgEndBeforeStart)
	}
	return nil
}

// NormalizeMilestones is the scheduling heart of the package. An empty list
// synthesizes the three default checkpoints from the campaign bounds;
// provided entries are validated, bounds-checked and canonicalized. The
// result is always sorted ascending by date (stable, so same-day milestones
// keep their input order). Normalization is idempotent: feeding the output
// back in with the same bounds yields an identical sequence.
func NormalizeMilestones(entries []MilestoneInput, bounds Bounds) ([]entities.Milestone, error) {
	if len(entries) == 0 {
		return defaultMilestones(bounds), nil
	}
	if len(entries) > maxMilestones {
		return nil, invalid("milestones", msgTooMany)
	}

	milestones := make([]entities.Milestone, 0, len(entries))
	for i, entry := range entries {
		canonical, err := parseMilestoneEntry(i, entry)
		if err != nil {
			return nil, err
		}
		if dateBefore(canonical.Date, bounds.StartDate) {
			return nil, invalid(indexedPath("milestones", i)+".date", msgMilestoneBefore)
		}
		if bounds.EndDate != nil && dateBefore(*bounds.EndDate, canonical.Date) {
			return nil, invalid(indexedPath("milestones", i)+".date", msgMilestoneAfter)
		}
		id := canonical.ID
		if id == "" {
			id = uuid.NewString()
		}
		status := entities.MilestoneStatus(canonical.Status)
		if !entities.IsSupportedMilestoneStatus(status) {
			// Lenient on this one field: unknown statuses downgrade to
			// pending instead of failing the whole payload.
			status = entities.MilestoneStatusPending
		}
		milestones = append(milestones, entities.Milestone{
			ID:     id,
			Label:  canonical.Label,
			Date:   canonical.Date,
			Status: status,
		})
	}

	sort.SliceStable(milestones, func(i, j int) bool {
		return dateBefore(milestones[i].Date, milestones[j].Date)
	})
	return milestones, nil
}

func defaultMilestones(bounds Bounds) []entities.Milestone {
	launch := addDays(bounds.StartDate, 14)
	review := addDays(bounds.StartDate, 30)
	if bounds.EndDate != nil {
		launch = *bounds.EndDate
		review = addDays(*bounds.EndDate, 7)
	}
	return []entities.Milestone{
		{ID: uuid.NewString(), Label: "Kickoff", Date: bounds.StartDate, Status: entities.MilestoneStatusInProgress},
		{ID: uuid.NewString(), Label: "Launch campaign assets", Date: launch, Status: entities.MilestoneStatusPending},
		{ID: uuid.NewString(), Label: "Performance review", Date: review, Status: entities.MilestoneStatusPending},
	}
}

// parseMilestoneEntry checks the per-entry syntactic rules and canonicalizes
// label and date. Bounds and status coercion stay in NormalizeMilestones.
func parseMilestoneEntry(index int, entry MilestoneInput) (MilestoneInput, error) {
	label := strings.TrimSpace(entry.Label)
	if n := utf8.RuneCountInString(label); n < labelMinLen || n > labelMaxLen {
		return MilestoneInput{}, invalid(indexedPath("milestones", index)+".label", msgLabel)
	}
	parsed, ok := ParseDate(entry.Date)
	if !ok {
		return MilestoneInput{}, invalid(indexedPath("milestones", index)+".date", msgMilestoneDate)
	}
	return MilestoneInput{
		ID:     strings.TrimSpace(entry.ID),
		Label:  label,
		Date:   ToDateOnly(parsed),
		Status: strings.TrimSpace(entry.Status),
	}, nil
}

func parseName(raw string) (string, error) {
	// Limits count characters, not bytes, so multibyte names measure fairly.
	name := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		return "", invalid("name", msgName)
	}
	return name, nil
}

// parseClientID treats empty, null and absent identically: unassigned.
func parseClientID(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	if !isUUID(value) {
		return nil, invalid("clientId", msgClientID)
	}
	return &value, nil
}

func parseStatus(raw string, allowEmpty bool) (entities.CampaignStatus, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		if allowEmpty {
			return entities.CampaignStatusPlanned, nil
		}
		return "", invalid("status", msgStatus)
	}
	status := entities.CampaignStatus(value)
	if !entities.IsSupportedCampaignStatus(status) {
		return "", invalid("status", msgStatus)
	}
	return status, nil
}

// parseDescription normalizes empty and null to absent.
func parseDescription(raw *string) (string, error) {
	if raw == nil {
		return "", nil
	}
	description := strings.TrimSpace(*raw)
	if utf8.RuneCountInString(description) > descriptionMaxLen {
		return "", invalid("description", msgDescription)
	}
	return description, nil
}

func isUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

func indexedPath(field string, index int) string {
	return field + "[" + strconv.Itoa(index) + "]"
}
