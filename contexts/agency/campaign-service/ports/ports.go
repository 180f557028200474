package ports

import (
	"context"
	"time"

	"socialdesk/contexts/agency/campaign-service/domain/entities"
)

// CampaignFilter narrows an owner-scoped listing. UserID is always set by
// the caller; nil pointers mean "no filter". From/To are canonical
// YYYY-MM-DD strings applied to the kickoff date (gte/lte).
type CampaignFilter struct {
	UserID   string
	ClientID *string
	Status   *entities.CampaignStatus
	From     *string
	To       *string
}

// CampaignRepository is owner-scoped on every read and mutation: rows
// belonging to other users are invisible, and mutations against them report
// ErrCampaignNotFound. Listing orders by position ascending.
type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, userID string, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	DeleteCampaign(ctx context.Context, userID string, campaignID string) error

	// NextPosition returns max(position)+1 among the owner's campaigns,
	// starting at 1 for the first campaign.
	NextPosition(ctx context.Context, userID string) (int, error)
	// SetPosition moves a single campaign to the given ordering slot.
	SetPosition(ctx context.Context, userID string, campaignID string, position int) error

	// CompletePastEndDate marks up to limit active campaigns whose wrap-up
	// date is strictly before today (YYYY-MM-DD) as completed, returning the
	// affected campaign ids.
	CompletePastEndDate(ctx context.Context, today string, limit int) ([]string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Event is a campaign change notification. Delivery is fire-and-forget
// best-effort: no ordering or delivery guarantee beyond "eventually
// refetch".
type Event struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	CampaignID string    `json:"campaign_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CampaignEventsTopic carries all campaign lifecycle events.
const CampaignEventsTopic = "campaigns"

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

// EventSubscriber hands back a receive channel plus a cancel function that
// detaches the subscription and closes the channel.
type EventSubscriber interface {
	Subscribe(topic string) (<-chan Event, func())
}
