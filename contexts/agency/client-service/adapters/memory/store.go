package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "socialdesk/contexts/agency/client-service/domain/errors"
	"socialdesk/contexts/agency/client-service/domain/entities"
)

// Store is the in-memory client repository. Contact ciphertext is stored
// exactly as handed over, which lets tests assert encryption-at-rest.
type Store struct {
	mu      sync.RWMutex
	clients map[string]entities.Client
}

func NewStore() *Store {
	return &Store{clients: make(map[string]entities.Client)}
}

// ContactAtRest exposes the stored (encrypted) contact for a client, for
// at-rest assertions in tests.
func (s *Store) ContactAtRest(clientID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, exists := s.clients[clientID]
	return client.Contact, exists
}

func (s *Store) CreateClient(_ context.Context, client entities.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.clients[client.ClientID]; exists {
		return domainerrors.ErrClientNotFound
	}
	s.clients[client.ClientID] = client
	return nil
}

func (s *Store) UpdateClient(_ context.Context, client entities.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, exists := s.clients[client.ClientID]
	if !exists || existing.UserID != client.UserID {
		return domainerrors.ErrClientNotFound
	}
	s.clients[client.ClientID] = client
	return nil
}

func (s *Store) GetClient(_ context.Context, userID string, clientID string) (entities.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, exists := s.clients[strings.TrimSpace(clientID)]
	if !exists || client.UserID != userID {
		return entities.Client{}, domainerrors.ErrClientNotFound
	}
	return client, nil
}

func (s *Store) ListClients(_ context.Context, userID string) ([]entities.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Client, 0)
	for _, client := range s.clients {
		if client.UserID == userID {
			items = append(items, client)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

func (s *Store) DeleteClient(_ context.Context, userID string, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	client, exists := s.clients[strings.TrimSpace(clientID)]
	if !exists || client.UserID != userID {
		return domainerrors.ErrClientNotFound
	}
	delete(s.clients, clientID)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
