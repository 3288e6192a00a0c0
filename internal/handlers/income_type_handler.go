package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/pagination"
	"github.com/rodrigovixc/finance-bolt/internal/services"
)

// IncomeTypeHandler handles income-type-related requests.
type IncomeTypeHandler struct {
	incomeTypeService services.IncomeTypeServicer
}

// NewIncomeTypeHandler creates a new IncomeTypeHandler.
func NewIncomeTypeHandler(incomeTypeService services.IncomeTypeServicer) *IncomeTypeHandler {
	return &IncomeTypeHandler{incomeTypeService: incomeTypeService}
}

// CreateIncomeTypeRequest represents the request payload for creating an income type
type CreateIncomeTypeRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateIncomeTypeRequest represents the request payload for updating an income type
type UpdateIncomeTypeRequest struct {
	Name        string `json:"name" binding:"omitempty,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// IncomeTypeResponse represents an income type in the response
type IncomeTypeResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateIncomeType handles the creation of a new income type
// @Summary     Create an income type
// @Description Create a new income type for the authenticated user
// @Tags        income-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeTypeRequest true "Income type details"
// @Success     201 {object} IncomeTypeResponse "Income type created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-types [post]
func (h *IncomeTypeHandler) CreateIncomeType(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	incomeType, err := h.incomeTypeService.CreateIncomeType(userID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"income_type": incomeType})
}

// GetUserIncomeTypes handles the retrieval of the user's income types
// @Summary     List income types
// @Description Get a paginated list of the authenticated user's income types
// @Tags        income-types
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Success     200 {array} IncomeTypeResponse "List of income types"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-types [get]
func (h *IncomeTypeHandler) GetUserIncomeTypes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.incomeTypeService.GetUserIncomeTypes(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_types": result})
}

// GetIncomeTypeByID handles the retrieval of a specific income type
// @Summary     Get income type by ID
// @Description Get a specific income type by ID
// @Tags        income-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income type ID"
// @Success     200 {object} IncomeTypeResponse "Income type details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-types/{id} [get]
func (h *IncomeTypeHandler) GetIncomeTypeByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeTypeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeType, err := h.incomeTypeService.GetIncomeTypeByID(userID, incomeTypeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_type": incomeType})
}

// UpdateIncomeType handles updating an existing income type
// @Summary     Update an income type
// @Description Update an existing income type
// @Tags        income-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income type ID"
// @Param       request body UpdateIncomeTypeRequest true "Fields to update"
// @Success     200 {object} IncomeTypeResponse "Income type updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-types/{id} [put]
func (h *IncomeTypeHandler) UpdateIncomeType(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeTypeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	incomeType, err := h.incomeTypeService.UpdateIncomeType(userID, incomeTypeID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_type": incomeType})
}

// DeleteIncomeType handles the removal of an income type
// @Summary     Delete an income type
// @Description Delete an income type owned by the authenticated user
// @Tags        income-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income type ID"
// @Success     200 {object} MessageResponse "Income type deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-types/{id} [delete]
func (h *IncomeTypeHandler) DeleteIncomeType(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeTypeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeTypeService.DeleteIncomeType(userID, incomeTypeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Income type deleted"})
}
