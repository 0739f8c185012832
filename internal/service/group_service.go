package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// GroupService manages the stock groups of a portfolio.
type GroupService struct {
	groupRepo     *repository.GroupRepository
	portfolioRepo *repository.PortfolioRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo *repository.GroupRepository, portfolioRepo *repository.PortfolioRepository) *GroupService {
	return &GroupService{
		groupRepo:     groupRepo,
		portfolioRepo: portfolioRepo,
	}
}

// GetGroups lists the groups of a portfolio in creation order.
func (s *GroupService) GetGroups(ctx context.Context, portfolioID string) ([]model.Group, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID); err != nil {
		return nil, err
	}
	return s.groupRepo.GetGroupsByPortfolio(ctx, portfolioID)
}

func (s *GroupService) CreateGroup(ctx context.Context, portfolioID string, req request.CreateGroupRequest) (*model.Group, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID); err != nil {
		return nil, err
	}

	group := &model.Group{
		ID:          uuid.New().String(),
		PortfolioID: portfolioID,
		Name:        strings.TrimSpace(req.Name),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.groupRepo.InsertGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// DeleteGroup removes a group. Its stocks stay in the portfolio without a group.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	return s.groupRepo.DeleteGroup(ctx, groupID)
}
