package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/foodlink/internal/client/client"
	"github.com/dmitrijs2005/foodlink/internal/client/models"
)

const requestsPath = "api/requests/"

type RequestService interface {
	List(ctx context.Context) ([]models.FoodRequest, error)
	Create(ctx context.Context, in models.NewFoodRequest) (*models.FoodRequest, error)
	// Approve is the donor accepting a pending request.
	Approve(ctx context.Context, id int64) (string, error)
	// CompletePickup is the NGO confirming an approved pickup.
	CompletePickup(ctx context.Context, id int64) (string, error)
}

type requestService struct {
	client client.Client
	cache  *Cache
}

func NewRequestService(c client.Client, cache *Cache) RequestService {
	return &requestService{client: c, cache: cache}
}

type actionResponse struct {
	Message string `json:"message"`
}

func (s *requestService) List(ctx context.Context) ([]models.FoodRequest, error) {
	rs, err := fetch(ctx, s.cache, KeyRequests, func(ctx context.Context) ([]models.FoodRequest, error) {
		var out []models.FoodRequest
		if err := s.client.Do(ctx, http.MethodGet, requestsPath, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return rs, nil
}

func (s *requestService) Create(ctx context.Context, in models.NewFoodRequest) (*models.FoodRequest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var out models.FoodRequest
	if err := s.client.Do(ctx, http.MethodPost, requestsPath, in, &out); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.cache.Invalidate(KeyRequests, KeyDonations)
	return &out, nil
}

func (s *requestService) Approve(ctx context.Context, id int64) (string, error) {
	msg, err := s.action(ctx, id, "approve")
	if err != nil {
		return "", err
	}
	s.cache.Invalidate(KeyRequests)
	return msg, nil
}

func (s *requestService) CompletePickup(ctx context.Context, id int64) (string, error) {
	msg, err := s.action(ctx, id, "complete_pickup")
	if err != nil {
		return "", err
	}
	s.cache.Invalidate(KeyRequests, KeyDonations, KeyImpactStats)
	return msg, nil
}

func (s *requestService) action(ctx context.Context, id int64, name string) (string, error) {
	var out actionResponse
	path := fmt.Sprintf("%s%d/%s/", requestsPath, id, name)
	if err := s.client.Do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return "", fmt.Errorf("%s request %d: %w", name, id, err)
	}
	return out.Message, nil
}
