package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"socialdesk/contexts/agency/campaign-service/domain/entities"
	domainerrors "socialdesk/contexts/agency/campaign-service/domain/errors"
	"socialdesk/contexts/agency/campaign-service/domain/normalize"
	"socialdesk/contexts/agency/campaign-service/ports"
)

// Store is the in-memory campaign repository used by tests and local runs.
// Rows are held in the store shape (normalize.Row) and mapped through the
// same MapRow path the postgres adapter uses, so the memory store exercises
// the row mapper rather than bypassing it. The joined client relation is
// shaped as a one-element array here; postgres shapes it as a single
// object. MapRow accepts both.
type Store struct {
	mu sync.RWMutex

	rows        map[string]normalize.Row
	clientNames map[string]string
}

func NewStore(seed []entities.Campaign) *Store {
	s := &Store{
		rows:        make(map[string]normalize.Row, len(seed)),
		clientNames: make(map[string]string),
	}
	for _, item := range seed {
		s.rows[item.CampaignID] = rowFromEntity(item)
	}
	return s
}

// PutClientName registers a client for join denormalization.
func (s *Store) PutClientName(clientID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientNames[clientID] = name
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[campaign.CampaignID]; exists {
		return domainerrors.ErrStoreFailure
	}
	s.rows[campaign.CampaignID] = rowFromEntity(campaign)
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.rows[campaign.CampaignID]
	if !exists || existing.UserID != campaign.UserID {
		return domainerrors.ErrCampaignNotFound
	}
	row := rowFromEntity(campaign)
	row.Position = existing.Position
	s.rows[campaign.CampaignID] = row
	return nil
}

func (s *Store) GetCampaign(_ context.Context, userID string, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, exists := s.rows[strings.TrimSpace(campaignID)]
	if !exists || row.UserID != userID {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return normalize.MapRow(s.withJoin(row)), nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0)
	for _, row := range s.rows {
		if row.UserID != filter.UserID {
			continue
		}
		if filter.ClientID != nil && (row.ClientID == nil || *row.ClientID != *filter.ClientID) {
			continue
		}
		if filter.Status != nil && row.Status != string(*filter.Status) {
			continue
		}
		startDate := normalize.ToDateOnly(row.StartDate)
		if filter.From != nil && startDate < *filter.From {
			continue
		}
		if filter.To != nil && startDate > *filter.To {
			continue
		}
		items = append(items, normalize.MapRow(s.withJoin(row)))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteCampaign(_ context.Context, userID string, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(campaignID)
	row, exists := s.rows[key]
	if !exists || row.UserID != userID {
		return domainerrors.ErrCampaignNotFound
	}
	delete(s.rows, key)
	return nil
}

func (s *Store) NextPosition(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := 0
	for _, row := range s.rows {
		if row.UserID == userID && row.Position > max {
			max = row.Position
		}
	}
	return max + 1, nil
}

func (s *Store) SetPosition(_ context.Context, userID string, campaignID string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.rows[campaignID]
	if !exists || row.UserID != userID {
		return domainerrors.ErrCampaignNotFound
	}
	row.Position = position
	s.rows[campaignID] = row
	return nil
}

func (s *Store) CompletePastEndDate(_ context.Context, today string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make([]string, 0)
	for id, row := range s.rows {
		if len(completed) >= limit {
			break
		}
		if row.Status != string(entities.CampaignStatusActive) || row.EndDate == nil {
			continue
		}
		if normalize.ToDateOnly(*row.EndDate) >= today {
			continue
		}
		row.Status = string(entities.CampaignStatusCompleted)
		row.UpdatedAt = time.Now().UTC()
		s.rows[id] = row
		completed = append(completed, id)
	}
	return completed, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// withJoin attaches the joined client relation in the one-element array
// shape.
func (s *Store) withJoin(row normalize.Row) normalize.Row {
	if row.ClientID == nil {
		return row
	}
	name, exists := s.clientNames[*row.ClientID]
	if !exists {
		return row
	}
	joined, _ := json.Marshal([]map[string]string{{"name": name}})
	row.Clients = joined
	return row
}

func rowFromEntity(item entities.Campaign) normalize.Row {
	start, _ := normalize.ParseDate(item.StartDate)
	row := normalize.Row{
		ID:        item.CampaignID,
		UserID:    item.UserID,
		ClientID:  item.ClientID,
		Name:      item.Name,
		Status:    string(item.Status),
		StartDate: start,
		Position:  item.Position,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	row.Description = item.Description
	if item.EndDate != nil {
		end, _ := normalize.ParseDate(*item.EndDate)
		row.EndDate = &end
	}
	if milestones, err := json.Marshal(item.Milestones); err == nil {
		row.Milestones = milestones
	}
	if item.Metadata != nil {
		if metadata, err := json.Marshal(item.Metadata); err == nil {
			row.Metadata = metadata
		}
	}
	return row
}
