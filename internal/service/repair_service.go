package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fixtrack/repair-shop-api/internal/dto"
	"github.com/fixtrack/repair-shop-api/internal/models"
	"github.com/fixtrack/repair-shop-api/internal/repository"
	appErrors "github.com/fixtrack/repair-shop-api/pkg/errors"
)

type repairStore interface {
	Create(ctx context.Context, params repository.CreateRepairParams) (int64, error)
	List(ctx context.Context) ([]models.RepairJob, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status) (*models.RepairJob, error)
	Delete(ctx context.Context, id int64) error
}

// RepairService validates and defaults incoming payloads before they reach
// storage, and maps storage failures to typed errors. Validation failures
// always short-circuit; no storage call sees unvalidated input.
type RepairService struct {
	repo      repairStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRepairService builds a RepairService with sane defaults.
func NewRepairService(repo repairStore, validate *validator.Validate, logger *zap.Logger) *RepairService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RepairService{repo: repo, validator: validate, logger: logger}
}

// Create validates the payload, applies defaults and inserts the job,
// returning the assigned id.
func (s *RepairService) Create(ctx context.Context, req dto.CreateRepairRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Missing required fields: title, customerName, repairType")
	}

	cost := req.EstimatedCost.Value()
	if cost != nil && *cost < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "estimatedCost must not be negative")
	}

	priority := models.Priority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityMedium
	} else if !priority.Valid() {
		return 0, appErrors.Clone(appErrors.ErrValidation, "priority must be one of Low, Medium, High, Emergency")
	}

	status := models.Status(req.Status)
	if req.Status == "" {
		status = models.StatusPending
	} else if !status.Valid() {
		return 0, appErrors.Clone(appErrors.ErrValidation, "status must be one of Pending, In Progress, Completed, On Hold")
	}

	dateAdded := req.DateAdded
	if dateAdded == "" {
		dateAdded = time.Now().Format("2006-01-02")
	}

	id, err := s.repo.Create(ctx, repository.CreateRepairParams{
		Title:         req.Title,
		CustomerName:  req.CustomerName,
		RepairType:    req.RepairType,
		Priority:      priority,
		Status:        status,
		EstimatedCost: cost,
		DateAdded:     dateAdded,
	})
	if err != nil {
		if repository.IsCheckViolation(err) {
			return 0, appErrors.Clone(appErrors.ErrValidation, "invalid priority or status value")
		}
		s.logger.Error("failed to add repair", zap.Error(err))
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to add repair")
	}
	return id, nil
}

// List returns all repair jobs in canonical shape, newest first.
func (s *RepairService) List(ctx context.Context) ([]models.RepairJob, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to fetch repairs", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch repairs")
	}
	return jobs, nil
}

// UpdateStatus moves a job to the requested status and returns the updated
// record. The status is checked against the enumeration here rather than
// left to the schema constraint so the client gets a clear 400.
func (s *RepairService) UpdateStatus(ctx context.Context, rawID string, req dto.UpdateRepairStatusRequest) (*models.RepairJob, error) {
	if req.Status == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Status is required")
	}
	status := models.Status(req.Status)
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of Pending, In Progress, Completed, On Hold")
	}

	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	job, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Repair not found")
		}
		if repository.IsCheckViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid status value")
		}
		s.logger.Error("failed to update repair status", zap.Error(err), zap.Int64("id", id))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to update repair status")
	}
	return job, nil
}

// Delete removes a job unconditionally. A second delete of the same id
// reports not-found.
func (s *RepairService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Repair not found")
		}
		s.logger.Error("failed to delete repair", zap.Error(err), zap.Int64("id", id))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to delete repair")
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "Invalid or missing repair ID")
	}
	return id, nil
}
