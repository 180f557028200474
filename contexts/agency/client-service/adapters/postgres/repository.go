package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "socialdesk/contexts/agency/client-service/domain/errors"
	"socialdesk/contexts/agency/client-service/domain/entities"
)

type clientModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	Name      string    `gorm:"column:name"`
	Contact   string    `gorm:"column:contact"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientModel) TableName() string {
	return "clients"
}

// Repository persists clients through gorm. The contact column already
// holds ciphertext by the time a row reaches this layer.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateClient(ctx context.Context, client entities.Client) error {
	model := toModel(client)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrClientNotFound
		}
		r.logger.Error("client insert failed",
			slog.String("event", "client_insert_failed"),
			slog.String("module", "client-service"),
			slog.String("layer", "adapters.postgres"),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (r *Repository) UpdateClient(ctx context.Context, client entities.Client) error {
	result := r.db.WithContext(ctx).
		Model(&clientModel{}).
		Where("id = ? AND user_id = ?", client.ClientID, client.UserID).
		Updates(map[string]any{
			"name":       client.Name,
			"contact":    client.Contact,
			"notes":      client.Notes,
			"updated_at": client.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrClientNotFound
	}
	return nil
}

func (r *Repository) GetClient(ctx context.Context, userID string, clientID string) (entities.Client, error) {
	var model clientModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", clientID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Client{}, domainerrors.ErrClientNotFound
		}
		return entities.Client{}, err
	}
	return toEntity(model), nil
}

func (r *Repository) ListClients(ctx context.Context, userID string) ([]entities.Client, error) {
	var models []clientModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("lower(name) ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Client, 0, len(models))
	for _, model := range models {
		items = append(items, toEntity(model))
	}
	return items, nil
}

func (r *Repository) DeleteClient(ctx context.Context, userID string, clientID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", clientID, userID).
		Delete(&clientModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrClientNotFound
	}
	return nil
}

func toModel(client entities.Client) clientModel {
	return clientModel{
		ID:        client.ClientID,
		UserID:    client.UserID,
		Name:      client.Name,
		Contact:   client.Contact,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

func toEntity(model clientModel) entities.Client {
	return entities.Client{
		ClientID:  model.ID,
		UserID:    model.UserID,
		Name:      model.Name,
		Contact:   model.Contact,
		Notes:     model.Notes,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
