package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixtrack/repair-shop-api/internal/dto"
	"github.com/fixtrack/repair-shop-api/internal/models"
	"github.com/fixtrack/repair-shop-api/internal/repository"
	appErrors "github.com/fixtrack/repair-shop-api/pkg/errors"
)

type repairStoreStub struct {
	createParams *repository.CreateRepairParams
	createID     int64
	createErr    error
	listResp     []models.RepairJob
	listErr      error
	updateResp   *models.RepairJob
	updateErr    error
	deleteErr    error

	createCalled bool
	updateCalled bool
	deleteCalled bool
}

func (s *repairStoreStub) Create(ctx context.Context, params repository.CreateRepairParams) (int64, error) {
	s.createCalled = true
	s.createParams = &params
	return s.createID, s.createErr
}

func (s *repairStoreStub) List(ctx context.Context) ([]models.RepairJob, error) {
	return s.listResp, s.listErr
}

func (s *repairStoreStub) UpdateStatus(ctx context.Context, id int64, status models.Status) (*models.RepairJob, error) {
	s.updateCalled = true
	return s.updateResp, s.updateErr
}

func (s *repairStoreStub) Delete(ctx context.Context, id int64) error {
	s.deleteCalled = true
	return s.deleteErr
}

func TestRepairServiceCreateAppliesDefaults(t *testing.T) {
	store := &repairStoreStub{createID: 5}
	svc := NewRepairService(store, nil, nil)

	id, err := svc.Create(context.Background(), dto.CreateRepairRequest{
		Title:        "Fix leak",
		CustomerName: "Jane Doe",
		RepairType:   "Plumbing",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	require.NotNil(t, store.createParams)
	assert.Equal(t, models.PriorityMedium, store.createParams.Priority)
	assert.Equal(t, models.StatusPending, store.createParams.Status)
	assert.Nil(t, store.createParams.EstimatedCost)
	assert.Equal(t, time.Now().Format("2006-01-02"), store.createParams.DateAdded)
}

func TestRepairServiceCreateMissingFields(t *testing.T) {
	cases := []dto.CreateRepairRequest{
		{CustomerName: "Jane Doe", RepairType: "Plumbing"},
		{Title: "Fix leak", RepairType: "Plumbing"},
		{Title: "Fix leak", CustomerName: "Jane Doe"},
	}
	for _, req := range cases {
		store := &repairStoreStub{}
		svc := NewRepairService(store, nil, nil)
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		assert.False(t, store.createCalled, "validation failure must not reach storage")
	}
}

func TestRepairServiceCreateRejectsInvalidEnums(t *testing.T) {
	store := &repairStoreStub{}
	svc := NewRepairService(store, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateRepairRequest{
		Title: "Fix leak", CustomerName: "Jane Doe", RepairType: "Plumbing",
		Priority: "Urgent-ish",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), dto.CreateRepairRequest{
		Title: "Fix leak", CustomerName: "Jane Doe", RepairType: "Plumbing",
		Status: "Done",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.False(t, store.createCalled)
}

func TestRepairServiceCreateRejectsNegativeCost(t *testing.T) {
	store := &repairStoreStub{}
	svc := NewRepairService(store, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateRepairRequest{
		Title: "Fix leak", CustomerName: "Jane Doe", RepairType: "Plumbing",
		EstimatedCost: dto.Set(-10),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.False(t, store.createCalled)
}

func TestRepairServiceCreatePassesCostThrough(t *testing.T) {
	store := &repairStoreStub{createID: 9}
	svc := NewRepairService(store, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateRepairRequest{
		Title: "Fix leak", CustomerName: "Jane Doe", RepairType: "Plumbing",
		Priority:      "High",
		EstimatedCost: dto.Set(45.50),
	})
	require.NoError(t, err)
	require.NotNil(t, store.createParams.EstimatedCost)
	assert.Equal(t, 45.50, *store.createParams.EstimatedCost)
	assert.Equal(t, models.PriorityHigh, store.createParams.Priority)
}

func TestRepairServiceCreateStorageFailureStaysGeneric(t *testing.T) {
	store := &repairStoreStub{createErr: errors.New("pq: connection refused on 10.0.0.5")}
	svc := NewRepairService(store, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateRepairRequest{
		Title: "Fix leak", CustomerName: "Jane Doe", RepairType: "Plumbing",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Status, appErr.Status)
	assert.NotContains(t, appErr.Message, "10.0.0.5")
}

func TestRepairServiceUpdateStatusValidation(t *testing.T) {
	store := &repairStoreStub{}
	svc := NewRepairService(store, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "3", dto.UpdateRepairStatusRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateStatus(context.Background(), "3", dto.UpdateRepairStatusRequest{Status: "Finished"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateStatus(context.Background(), "abc", dto.UpdateRepairStatusRequest{Status: "Completed"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	assert.False(t, store.updateCalled)
}

func TestRepairServiceUpdateStatusNotFound(t *testing.T) {
	store := &repairStoreStub{updateErr: sql.ErrNoRows}
	svc := NewRepairService(store, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "99", dto.UpdateRepairStatusRequest{Status: "Completed"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}

func TestRepairServiceUpdateStatusSuccess(t *testing.T) {
	job := models.RepairJob{ID: "3", Status: models.StatusCompleted}
	store := &repairStoreStub{updateResp: &job}
	svc := NewRepairService(store, nil, nil)

	got, err := svc.UpdateStatus(context.Background(), "3", dto.UpdateRepairStatusRequest{Status: "Completed"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestRepairServiceDelete(t *testing.T) {
	store := &repairStoreStub{}
	svc := NewRepairService(store, nil, nil)
	require.NoError(t, svc.Delete(context.Background(), "3"))
	assert.True(t, store.deleteCalled)
}

func TestRepairServiceDeleteInvalidID(t *testing.T) {
	for _, raw := range []string{"", "abc", "-1", "0"} {
		store := &repairStoreStub{}
		svc := NewRepairService(store, nil, nil)
		err := svc.Delete(context.Background(), raw)
		require.Error(t, err, "id %q", raw)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		assert.False(t, store.deleteCalled)
	}
}

func TestRepairServiceDeleteNotFound(t *testing.T) {
	store := &repairStoreStub{deleteErr: sql.ErrNoRows}
	svc := NewRepairService(store, nil, nil)
	err := svc.Delete(context.Background(), "99")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}

func TestRepairServiceListWrapsStorageError(t *testing.T) {
	store := &repairStoreStub{listErr: errors.New("pq: relation missing")}
	svc := NewRepairService(store, nil, nil)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Status, appErr.Status)
	assert.NotContains(t, appErr.Message, "relation")
}
