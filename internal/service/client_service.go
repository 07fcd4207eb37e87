package service

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"errors"
	"strings"
)

var (
	ErrClientNotFound = errors.New("client not found")
)

// CreateClientInput is what a coach submits to add a client.
type CreateClientInput struct {
	Name  string
	Email string
	Phone string
}

type ClientService interface {
	CreateClient(ctx context.Context, coachID string, in CreateClientInput) (*domain.Client, error)
	ListClients(ctx context.Context, coachID string) ([]domain.Client, error)
	GetClient(ctx context.Context, coachID, clientID string) (*domain.Client, error)
}

// clientService implements the ClientService interface.
type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

// CreateClient adds a client to the coach's roster. Name and phone are required.
func (s *clientService) CreateClient(ctx context.Context, coachID string, in CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		CoachID: coachID,
		Name:    strings.TrimSpace(in.Name),
		Email:   normalizeEmail(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
	}
	if missing := missingOf(map[string]string{"name": client.Name, "phone": client.Phone}); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	if _, err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, coachID string) ([]domain.Client, error) {
	return s.clientRepo.ListByCoach(ctx, coachID)
}

// GetClient returns ErrClientNotFound for clients of other coaches too.
func (s *clientService) GetClient(ctx context.Context, coachID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}
