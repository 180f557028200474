package entities

import "time"

type CampaignStatus string
type MilestoneStatus string

const (
	CampaignStatusPlanned   CampaignStatus = "planned"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusArchived  CampaignStatus = "archived"

	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
)

// Milestone is a dated checkpoint embedded in a campaign's timeline.
// Dates are calendar dates in YYYY-MM-DD form, no time component.
type Milestone struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Date   string          `json:"date"`
	Status MilestoneStatus `json:"status"`
}

// Campaign is a marketing initiative owned by one user, optionally linked
// to a client. Milestones are kept sorted ascending by date; user-provided
// milestones fall within [StartDate, EndDate].
type Campaign struct {
	CampaignID  string
	UserID      string
	ClientID    *string
	ClientName  string
	Name        string
	Description string
	Status      CampaignStatus
	StartDate   string
	EndDate     *string
	Position    int
	Milestones  []Milestone
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func IsSupportedCampaignStatus(value CampaignStatus) bool {
	switch value {
	case CampaignStatusPlanned, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusCompleted, CampaignStatusArchived:
		return true
	default:
		return false
	}
}

func IsSupportedMilestoneStatus(value MilestoneStatus) bool {
	switch value {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted:
		return true
	default:
		return false
	}
}
