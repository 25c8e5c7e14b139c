package service

import (
	"context"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

type DashboardService struct {
	repo *repository.DashboardRepository
}

func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) Get(ctx context.Context, principal model.Principal) (*model.Dashboard, error) {
	return s.repo.Counts(ctx, principal.CompanyID)
}
