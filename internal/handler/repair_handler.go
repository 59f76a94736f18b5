package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixtrack/repair-shop-api/internal/dto"
	"github.com/fixtrack/repair-shop-api/internal/models"
	appErrors "github.com/fixtrack/repair-shop-api/pkg/errors"
	"github.com/fixtrack/repair-shop-api/pkg/response"
)

type repairService interface {
	Create(ctx context.Context, req dto.CreateRepairRequest) (int64, error)
	List(ctx context.Context) ([]models.RepairJob, error)
	UpdateStatus(ctx context.Context, rawID string, req dto.UpdateRepairStatusRequest) (*models.RepairJob, error)
	Delete(ctx context.Context, rawID string) error
}

// RepairHandler exposes the repair CRUD endpoints.
type RepairHandler struct {
	service repairService
}

// NewRepairHandler builds a new handler.
func NewRepairHandler(service repairService) *RepairHandler {
	return &RepairHandler{service: service}
}

// List godoc
// @Summary List repair jobs
// @Tags Repairs
// @Produce json
// @Success 200 {array} models.RepairJob
// @Router /repairs [get]
func (h *RepairHandler) List(c *gin.Context) {
	jobs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if jobs == nil {
		jobs = []models.RepairJob{}
	}
	response.JSON(c, http.StatusOK, jobs)
}

// Create godoc
// @Summary Add a repair job
// @Tags Repairs
// @Accept json
// @Produce json
// @Param payload body dto.CreateRepairRequest true "Repair payload"
// @Success 201 {object} dto.CreateRepairResponse
// @Router /repairs [post]
func (h *RepairHandler) Create(c *gin.Context) {
	var req dto.CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid repair payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreateRepairResponse{
		Message:  "Repair added successfully",
		RepairID: id,
	})
}

// UpdateStatus godoc
// @Summary Update a repair job's status
// @Tags Repairs
// @Accept json
// @Produce json
// @Param id path int true "Repair ID"
// @Param payload body dto.UpdateRepairStatusRequest true "Status payload"
// @Success 200 {object} models.RepairJob
// @Router /repairs/{id} [put]
func (h *RepairHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateRepairStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	job, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Delete godoc
// @Summary Delete a repair job
// @Tags Repairs
// @Produce json
// @Param id path int true "Repair ID"
// @Success 200 {object} dto.DeleteRepairResponse
// @Router /repairs/{id} [delete]
func (h *RepairHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.DeleteRepairResponse{
		Message: "Repair deleted successfully",
	})
}
