package app

import (
	"context"
	"fmt"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// WorkCenterServiceImpl implements the WorkCenterService interface.
type WorkCenterServiceImpl struct {
	workCenterRepo secondary.WorkCenterRepository
}

// NewWorkCenterService creates a new WorkCenterService with injected
// dependencies.
func NewWorkCenterService(workCenterRepo secondary.WorkCenterRepository) *WorkCenterServiceImpl {
	return &WorkCenterServiceImpl{workCenterRepo: workCenterRepo}
}

// CreateWorkCenter creates a new work center.
func (s *WorkCenterServiceImpl) CreateWorkCenter(ctx context.Context, req primary.CreateWorkCenterRequest) (*primary.WorkCenter, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("work center name is required")
	}

	nextID, err := s.workCenterRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate work center ID: %w", err)
	}

	record := &secondary.WorkCenterRecord{
		ID:          nextID,
		Name:        req.Name,
		Description: req.Description,
		Status:      "active",
	}
	if err := s.workCenterRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create work center: %w", err)
	}

	created, err := s.workCenterRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created work center: %w", err)
	}
	return recordToWorkCenter(created), nil
}

// GetWorkCenter retrieves a work center by ID.
func (s *WorkCenterServiceImpl) GetWorkCenter(ctx context.Context, workCenterID string) (*primary.WorkCenter, error) {
	record, err := s.workCenterRepo.GetByID(ctx, workCenterID)
	if err != nil {
		return nil, err
	}
	return recordToWorkCenter(record), nil
}

// ListWorkCenters lists all work centers.
func (s *WorkCenterServiceImpl) ListWorkCenters(ctx context.Context) ([]*primary.WorkCenter, error) {
	records, err := s.workCenterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work centers: %w", err)
	}

	workCenters := make([]*primary.WorkCenter, len(records))
	for i, r := range records {
		workCenters[i] = recordToWorkCenter(r)
	}
	return workCenters, nil
}

func recordToWorkCenter(r *secondary.WorkCenterRecord) *primary.WorkCenter {
	return &primary.WorkCenter{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Ensure WorkCenterServiceImpl implements the interface
var _ primary.WorkCenterService = (*WorkCenterServiceImpl)(nil)
