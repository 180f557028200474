package application

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "socialdesk/contexts/agency/client-service/domain/errors"
	"socialdesk/contexts/agency/client-service/domain/entities"
	"socialdesk/contexts/agency/client-service/ports"
)

const (
	nameMinLen    = 2
	nameMaxLen    = 120
	contactMaxLen = 320
	notesMaxLen   = 2000
)

type Service struct {
	Repo        ports.ClientRepository
	Crypt       ports.Encryptor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type ClientInput struct {
	Name    string
	Contact string
	Notes   string
}

type ClientUpdate struct {
	Name    *string
	Contact *string
	Notes   *string
}

func (s Service) CreateClient(ctx context.Context, userID string, input ClientInput) (entities.Client, error) {
	logger := s.logger()
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Client{}, domainerrors.ErrOwnerRequired
	}
	name, err := parseName(input.Name)
	if err != nil {
		return entities.Client{}, err
	}
	contact := strings.TrimSpace(input.Contact)
	if utf8.RuneCountInString(contact) > contactMaxLen {
		return entities.Client{}, domainerrors.ErrContactTooLong
	}
	notes := strings.TrimSpace(input.Notes)
	if utf8.RuneCountInString(notes) > notesMaxLen {
		return entities.Client{}, domainerrors.ErrNotesTooLong
	}

	clientID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Client{}, err
	}
	sealed, err := s.Crypt.Encrypt(contact)
	if err != nil {
		return entities.Client{}, err
	}
	now := s.now()

	client := entities.Client{
		ClientID:  clientID,
		UserID:    userID,
		Name:      name,
		Contact:   sealed,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.CreateClient(ctx, client); err != nil {
		return entities.Client{}, err
	}

	logger.Info("client created",
		"event", "client_created",
		"module", "agency/client-service",
		"layer", "application",
		"client_id", clientID,
		"user_id", userID,
	)
	client.Contact = contact
	return client, nil
}

func (s Service) UpdateClient(ctx context.Context, userID string, clientID string, update ClientUpdate) (entities.Client, error) {
	logger := s.logger()
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Client{}, domainerrors.ErrOwnerRequired
	}
	if update.Name == nil && update.Contact == nil && update.Notes == nil {
		return entities.Client{}, domainerrors.ErrNoFieldsToUpdate
	}

	client, err := s.Repo.GetClient(ctx, userID, strings.TrimSpace(clientID))
	if err != nil {
		return entities.Client{}, err
	}

	if update.Name != nil {
		name, err := parseName(*update.Name)
		if err != nil {
			return entities.Client{}, err
		}
		client.Name = name
	}
	if update.Contact != nil {
		contact := strings.TrimSpace(*update.Contact)
		if utf8.RuneCountInString(contact) > contactMaxLen {
			return entities.Client{}, domainerrors.ErrContactTooLong
		}
		sealed, err := s.Crypt.Encrypt(contact)
		if err != nil {
			return entities.Client{}, err
		}
		client.Contact = sealed
	}
	if update.Notes != nil {
		notes := strings.TrimSpace(*update.Notes)
		if utf8.RuneCountInString(notes) > notesMaxLen {
			return entities.Client{}, domainerrors.ErrNotesTooLong
		}
		client.Notes = notes
	}

	client.UpdatedAt = s.now()
	if err := s.Repo.UpdateClient(ctx, client); err != nil {
		return entities.Client{}, err
	}

	logger.Info("client updated",
		"event", "client_updated",
		"module", "agency/client-service",
		"layer", "application",
		"client_id", client.ClientID,
		"user_id", userID,
	)
	return s.open(client)
}

func (s Service) GetClient(ctx context.Context, userID string, clientID string) (entities.Client, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.Client{}, domainerrors.ErrOwnerRequired
	}
	client, err := s.Repo.GetClient(ctx, strings.TrimSpace(userID), strings.TrimSpace(clientID))
	if err != nil {
		return entities.Client{}, err
	}
	return s.open(client)
}

func (s Service) ListClients(ctx context.Context, userID string) ([]entities.Client, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrOwnerRequired
	}
	clients, err := s.Repo.ListClients(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	for i, client := range clients {
		opened, err := s.open(client)
		if err != nil {
			return nil, err
		}
		clients[i] = opened
	}
	return clients, nil
}

func (s Service) DeleteClient(ctx context.Context, userID string, clientID string) error {
	logger := s.logger()
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domainerrors.ErrOwnerRequired
	}
	// Campaigns keep a dangling clientId after this; referential integrity
	// is delegated to the store.
	if err := s.Repo.DeleteClient(ctx, userID, strings.TrimSpace(clientID)); err != nil {
		return err
	}
	logger.Info("client deleted",
		"event", "client_deleted",
		"module", "agency/client-service",
		"layer", "application",
		"client_id", clientID,
		"user_id", userID,
	)
	return nil
}

func (s Service) open(client entities.Client) (entities.Client, error) {
	contact, err := s.Crypt.Decrypt(client.Contact)
	if err != nil {
		return entities.Client{}, err
	}
	client.Contact = contact
	return client, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func parseName(raw string) (string, error) {
	// Limits count characters, not bytes.
	name := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		return "", domainerrors.ErrInvalidName
	}
	return name, nil
}
