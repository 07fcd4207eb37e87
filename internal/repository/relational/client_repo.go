package relational

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (string, error) {
	if client.CoachID == "" || client.Name == "" {
		return "", errors.New("client requires coachId and name")
	}
	row := clientRow{
		CoachID: client.CoachID,
		Name:    client.Name,
		Email:   client.Email,
		Phone:   client.Phone,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translate(err)
	}
	client.ID = row.ID
	client.CreatedAt = row.CreatedAt
	client.UpdatedAt = row.UpdatedAt
	return row.ID, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id, coachID string) (*domain.Client, error) {
	var row clientRow
	err := r.db.WithContext(ctx).
		Where("id = ? AND coach_id = ?", id, coachID).
		First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	c := row.toDomain()
	return &c, nil
}

func (r *clientRepository) ListByCoach(ctx context.Context, coachID string) ([]domain.Client, error) {
	var rows []clientRow
	err := r.db.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(rows))
	for i := range rows {
		clients = append(clients, rows[i].toDomain())
	}
	return clients, nil
}
