package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/foodlink/internal/client/client"
	"github.com/dmitrijs2005/foodlink/internal/client/models"
)

const (
	impactPath  = "api/stats/impact/"
	heatmapPath = "api/stats/heatmap/"
)

type StatsService interface {
	Impact(ctx context.Context) (models.ImpactStats, error)
	Heatmap(ctx context.Context) ([]models.HeatmapPoint, error)
}

type statsService struct {
	client client.Client
	cache  *Cache
}

func NewStatsService(c client.Client, cache *Cache) StatsService {
	return &statsService{client: c, cache: cache}
}

func (s *statsService) Impact(ctx context.Context) (models.ImpactStats, error) {
	st, err := fetch(ctx, s.cache, KeyImpactStats, func(ctx context.Context) (models.ImpactStats, error) {
		var out models.ImpactStats
		err := s.client.Do(ctx, http.MethodGet, impactPath, nil, &out)
		return out, err
	})
	if err != nil {
		return models.ImpactStats{}, fmt.Errorf("impact stats: %w", err)
	}
	return st, nil
}

func (s *statsService) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	pts, err := fetch(ctx, s.cache, KeyHeatmap, func(ctx context.Context) ([]models.HeatmapPoint, error) {
		var out []models.HeatmapPoint
		if err := s.client.Do(ctx, http.MethodGet, heatmapPath, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	return pts, nil
}
