package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"socialdesk/contexts/agency/campaign-service/domain/entities"
	domainerrors "socialdesk/contexts/agency/campaign-service/domain/errors"
	"socialdesk/contexts/agency/campaign-service/domain/normalize"
	"socialdesk/contexts/agency/campaign-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row, err := campaignModelFromEntity(campaign)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrStoreFailure
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	updates, err := campaignUpdatesFromEntity(campaign)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("id = ? AND user_id = ?", strings.TrimSpace(campaign.CampaignID), campaign.UserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, userID string, campaignID string) (entities.Campaign, error) {
	var row campaignJoinedRow
	err := r.joined(ctx).
		Where("campaigns.id = ? AND campaigns.user_id = ?", strings.TrimSpace(campaignID), userID).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return normalize.MapRow(row.toRow()), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	tx := r.joined(ctx).Where("campaigns.user_id = ?", filter.UserID)
	if filter.ClientID != nil {
		tx = tx.Where("campaigns.client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		tx = tx.Where("campaigns.status = ?", string(*filter.Status))
	}
	if filter.From != nil {
		tx = tx.Where("campaigns.start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		tx = tx.Where("campaigns.start_date <= ?", *filter.To)
	}

	var rows []campaignJoinedRow
	if err := tx.Order("campaigns.position ASC, campaigns.created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, normalize.MapRow(row.toRow()))
	}
	return items, nil
}

func (r *Repository) DeleteCampaign(ctx context.Context, userID string, campaignID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", strings.TrimSpace(campaignID), userID).
		Delete(&campaignModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) NextPosition(ctx context.Context, userID string) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Select("COALESCE(MAX(position), 0) + 1").
		Where("user_id = ?", userID).
		Scan(&next).
		Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *Repository) SetPosition(ctx context.Context, userID string, campaignID string, position int) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("id = ? AND user_id = ?", campaignID, userID).
		Update("position", position)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) CompletePastEndDate(ctx context.Context, today string, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Select("id").
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", string(entities.CampaignStatusActive), today).
		Limit(limit).
		Scan(&ids).
		Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err = r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":     string(entities.CampaignStatusCompleted),
			"updated_at": time.Now().UTC(),
		}).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Select("campaigns.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = campaigns.client_id")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type campaignModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	UserID      string     `gorm:"column:user_id;index"`
	ClientID    *string    `gorm:"column:client_id"`
	Name        string     `gorm:"column:name"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status"`
	StartDate   time.Time  `gorm:"column:start_date;type:date"`
	EndDate     *time.Time `gorm:"column:end_date;type:date"`
	Position    int        `gorm:"column:position"`
	Milestones  []byte     `gorm:"column:milestones;type:jsonb"`
	Metadata    []byte     `gorm:"column:metadata;type:jsonb"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

// campaignJoinedRow is campaignModel plus the denormalized client name
// selected off the join.
type campaignJoinedRow struct {
	campaignModel
	ClientName *string `gorm:"column:client_name"`
}

// toRow shapes the joined relation as a single object; the memory store
// shapes it as a one-element array. MapRow handles both.
func (m campaignJoinedRow) toRow() normalize.Row {
	row := normalize.Row{
		ID:          m.ID,
		UserID:      m.UserID,
		ClientID:    m.ClientID,
		Name:        m.Name,
		Description: m.Description,
		Status:      m.Status,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Position:    m.Position,
		Milestones:  m.Milestones,
		Metadata:    m.Metadata,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.ClientName != nil {
		joined, _ := json.Marshal(map[string]string{"name": *m.ClientName})
		row.Clients = joined
	}
	return row
}

func campaignModelFromEntity(item entities.Campaign) (campaignModel, error) {
	milestones, err := json.Marshal(item.Milestones)
	if err != nil {
		return campaignModel{}, err
	}
	var metadata []byte
	if item.Metadata != nil {
		metadata, err = json.Marshal(item.Metadata)
		if err != nil {
			return campaignModel{}, err
		}
	}
	start, _ := normalize.ParseDate(item.StartDate)
	row := campaignModel{
		ID:          strings.TrimSpace(item.CampaignID),
		UserID:      strings.TrimSpace(item.UserID),
		ClientID:    item.ClientID,
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
		StartDate:   start,
		Position:    item.Position,
		Milestones:  milestones,
		Metadata:    metadata,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
	if item.EndDate != nil {
		end, _ := normalize.ParseDate(*item.EndDate)
		row.EndDate = &end
	}
	return row, nil
}

// campaignUpdatesFromEntity writes every mutable column: updates are
// last-write-wins full-row replacements, position excepted (owned by the
// reorder flow).
func campaignUpdatesFromEntity(item entities.Campaign) (map[string]any, error) {
	milestones, err := json.Marshal(item.Milestones)
	if err != nil {
		return nil, err
	}
	var metadata []byte
	if item.Metadata != nil {
		metadata, err = json.Marshal(item.Metadata)
		if err != nil {
			return nil, err
		}
	}
	start, _ := normalize.ParseDate(item.StartDate)
	updates := map[string]any{
		"client_id":   item.ClientID,
		"name":        item.Name,
		"description": item.Description,
		"status":      string(item.Status),
		"start_date":  start,
		"end_date":    nil,
		"milestones":  milestones,
		"metadata":    metadata,
		"updated_at":  item.UpdatedAt.UTC(),
	}
	if item.EndDate != nil {
		end, _ := normalize.ParseDate(*item.EndDate)
		updates["end_date"] = end
	}
	return updates, nil
}
