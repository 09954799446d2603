package service

import (
	"context"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/util"
)

// DashboardOverview is the admin landing projection.
type DashboardOverview struct {
	TicketsByStatus map[domain.TicketStatus]int
	BranchLoad      []repository.BranchLoad
	Reliability     []repository.ModelReliability
}

// DashboardService assembles aggregate read models for admins.
type DashboardService struct {
	dashboards repository.DashboardRepository
}

// NewDashboardService instantiates service.
func NewDashboardService(dashboards repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboards: dashboards}
}

// Overview returns ticket counts per status, open load per branch and
// per-model asset reliability in a single response.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	byStatus, err := s.dashboards.CountTicketsByStatus(ctx)
	if err != nil {
		return nil, util.ToDomainError(err)
	}
	load, err := s.dashboards.OpenLoadByBranch(ctx)
	if err != nil {
		return nil, util.ToDomainError(err)
	}
	reliability, err := s.dashboards.AssetReliability(ctx)
	if err != nil {
		return nil, util.ToDomainError(err)
	}
	return &DashboardOverview{
		TicketsByStatus: byStatus,
		BranchLoad:      load,
		Reliability:     reliability,
	}, nil
}
