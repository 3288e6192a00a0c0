package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/models"
	"github.com/rodrigovixc/finance-bolt/internal/pagination"
	"github.com/rodrigovixc/finance-bolt/internal/services"
)

// --- mock income type service ---

type mockIncomeTypeService struct {
	createIncomeTypeFn   func(userID uint, name, description string) (*models.IncomeType, error)
	getUserIncomeTypesFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeType], error)
	getIncomeTypeByIDFn  func(userID, incomeTypeID uint) (*models.IncomeType, error)
	updateIncomeTypeFn   func(userID, incomeTypeID uint, name, description string) (*models.IncomeType, error)
	deleteIncomeTypeFn   func(userID, incomeTypeID uint) error
}

func (m *mockIncomeTypeService) CreateIncomeType(userID uint, name, description string) (*models.IncomeType, error) {
	if m.createIncomeTypeFn != nil {
		return m.createIncomeTypeFn(userID, name, description)
	}
	return &models.IncomeType{}, nil
}

func (m *mockIncomeTypeService) GetUserIncomeTypes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeType], error) {
	if m.getUserIncomeTypesFn != nil {
		return m.getUserIncomeTypesFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.IncomeType{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockIncomeTypeService) GetIncomeTypeByID(userID, incomeTypeID uint) (*models.IncomeType, error) {
	if m.getIncomeTypeByIDFn != nil {
		return m.getIncomeTypeByIDFn(userID, incomeTypeID)
	}
	return &models.IncomeType{}, nil
}

func (m *mockIncomeTypeService) UpdateIncomeType(userID, incomeTypeID uint, name, description string) (*models.IncomeType, error) {
	if m.updateIncomeTypeFn != nil {
		return m.updateIncomeTypeFn(userID, incomeTypeID, name, description)
	}
	return &models.IncomeType{}, nil
}

func (m *mockIncomeTypeService) DeleteIncomeType(userID, incomeTypeID uint) error {
	if m.deleteIncomeTypeFn != nil {
		return m.deleteIncomeTypeFn(userID, incomeTypeID)
	}
	return nil
}

var _ services.IncomeTypeServicer = (*mockIncomeTypeService)(nil)

func setupIncomeTypeRouter(handler *IncomeTypeHandler) *gin.Engine {
	r := gin.New()
	group := r.Group("/income-types", injectUserID(1))
	group.POST("", handler.CreateIncomeType)
	group.GET("", handler.GetUserIncomeTypes)
	group.GET("/:id", handler.GetIncomeTypeByID)
	group.PUT("/:id", handler.UpdateIncomeType)
	group.DELETE("/:id", handler.DeleteIncomeType)
	return r
}

func TestIncomeTypeHandler_CreateIncomeType(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockIncomeTypeService{
			createIncomeTypeFn: func(userID uint, name, description string) (*models.IncomeType, error) {
				it := &models.IncomeType{UserID: userID, Name: name, Description: description}
				it.ID = 1
				return it, nil
			},
		}
		r := setupIncomeTypeRouter(NewIncomeTypeHandler(svc))

		rec := doRequest(r, http.MethodPost, "/income-types", `{"name":"Salary"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 for missing name", func(t *testing.T) {
		r := setupIncomeTypeRouter(NewIncomeTypeHandler(&mockIncomeTypeService{}))

		rec := doRequest(r, http.MethodPost, "/income-types", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestIncomeTypeHandler_DeleteIncomeType(t *testing.T) {
	t.Run("returns 404 for another user's income type", func(t *testing.T) {
		svc := &mockIncomeTypeService{
			deleteIncomeTypeFn: func(_, _ uint) error { return apperrors.ErrIncomeTypeNotFound },
		}
		r := setupIncomeTypeRouter(NewIncomeTypeHandler(svc))

		rec := doRequest(r, http.MethodDelete, "/income-types/8", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INCOME_TYPE_NOT_FOUND")
	})
}
