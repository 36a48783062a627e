// Package services wraps the FoodLink REST endpoints used by the client.
// Reads go through a shared Cache; mutations invalidate the keys whose
// data they change.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/foodlink/internal/client/client"
	"github.com/dmitrijs2005/foodlink/internal/client/models"
)

const donationsPath = "api/donations/"

type DonationService interface {
	// List returns the donations visible to the current user: a donor's own
	// donations, or the open donations for an NGO.
	List(ctx context.Context) ([]models.Donation, error)
	// ListAvailable is List restricted to donations that can be requested.
	ListAvailable(ctx context.Context) ([]models.Donation, error)
	Create(ctx context.Context, in models.NewDonation) (*models.Donation, error)
}

type donationService struct {
	client client.Client
	cache  *Cache
}

func NewDonationService(c client.Client, cache *Cache) DonationService {
	return &donationService{client: c, cache: cache}
}

func (s *donationService) List(ctx context.Context) ([]models.Donation, error) {
	ds, err := fetch(ctx, s.cache, KeyDonations, func(ctx context.Context) ([]models.Donation, error) {
		var out []models.Donation
		if err := s.client.Do(ctx, http.MethodGet, donationsPath, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return ds, nil
}

func (s *donationService) ListAvailable(ctx context.Context) ([]models.Donation, error) {
	ds, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.FilterAvailable(ds), nil
}

func (s *donationService) Create(ctx context.Context, in models.NewDonation) (*models.Donation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var out models.Donation
	if err := s.client.Do(ctx, http.MethodPost, donationsPath, in, &out); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}
	s.cache.Invalidate(KeyDonations)
	return &out, nil
}
