package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/models"
	"github.com/rodrigovixc/finance-bolt/internal/pagination"
	"github.com/rodrigovixc/finance-bolt/internal/services"
)

// dateLayout is the wire format for transaction dates.
const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Description       string  `json:"description" binding:"required,min=1,max=255"`
	Amount            float64 `json:"amount" binding:"required,gt=0"`
	Date              string  `json:"date" binding:"required"`
	Type              string  `json:"type" binding:"required,transaction_type"`
	CardID            *uint   `json:"card_id"`
	CategoryID        *uint   `json:"category_id"`
	IncomeTypeID      *uint   `json:"income_type_id"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurrencePeriod  string  `json:"recurrence_period" binding:"omitempty,recurrence_period"`
	RecurrenceEndDate *string `json:"recurrence_end_date"`
	Installments      int     `json:"installments" binding:"omitempty,min=1,max=120"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction
type UpdateTransactionRequest struct {
	Description string   `json:"description" binding:"omitempty,min=1,max=255"`
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	Date        *string  `json:"date"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID                 uint    `json:"id"`
	UserID             uint    `json:"user_id"`
	Description        string  `json:"description"`
	Amount             float64 `json:"amount"`
	Date               string  `json:"date"`
	Type               string  `json:"type"`
	CardID             *uint   `json:"card_id,omitempty"`
	CategoryID         *uint   `json:"category_id,omitempty"`
	IncomeTypeID       *uint   `json:"income_type_id,omitempty"`
	IsRecurring        bool    `json:"is_recurring"`
	InstallmentTotal   *int    `json:"installment_total,omitempty"`
	InstallmentCurrent *int    `json:"installment_current,omitempty"`
}

func (r *CreateTransactionRequest) toInput() (services.NewTransaction, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return services.NewTransaction{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD format")
	}

	input := services.NewTransaction{
		Description:  r.Description,
		Amount:       r.Amount,
		Date:         date,
		Type:         models.TransactionType(r.Type),
		CardID:       r.CardID,
		CategoryID:   r.CategoryID,
		IncomeTypeID: r.IncomeTypeID,
		IsRecurring:  r.IsRecurring,
		Installments: r.Installments,
	}

	if r.RecurrencePeriod != "" {
		period := models.RecurrencePeriod(r.RecurrencePeriod)
		input.RecurrencePeriod = &period
	}
	if r.RecurrenceEndDate != nil {
		end, err := time.Parse(dateLayout, *r.RecurrenceEndDate)
		if err != nil {
			return services.NewTransaction{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "recurrence_end_date must be in YYYY-MM-DD format")
		}
		input.RecurrenceEndDate = &end
	}

	return input, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new transaction. Expenses with installments > 1 are expanded into sibling rows of amount/N dated one month apart.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {array} TransactionResponse "Created rows (several for installment purchases)"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Referenced card, category or income type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transactions": rows})
}

// transactionListQuery holds the query parameters for listing transactions.
type transactionListQuery struct {
	pagination.PageRequest
	From         string `form:"from"`
	To           string `form:"to"`
	Type         string `form:"type" binding:"omitempty,transaction_type"`
	CardID       *uint  `form:"card_id"`
	CategoryID   *uint  `form:"category_id"`
	IncomeTypeID *uint  `form:"income_type_id"`
}

func (q *transactionListQuery) toFilter() (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	if q.From != "" {
		from, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be in YYYY-MM-DD format")
		}
		filter.FromDate = &from
	}
	if q.To != "" {
		to, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must be in YYYY-MM-DD format")
		}
		filter.ToDate = &to
	}
	if q.Type != "" {
		txType := models.TransactionType(q.Type)
		filter.Type = &txType
	}
	filter.CardID = q.CardID
	filter.CategoryID = q.CategoryID
	filter.IncomeTypeID = q.IncomeTypeID
	return filter, nil
}

// GetUserTransactions handles the retrieval of the user's transactions
// @Summary     List transactions
// @Description Get a filtered, paginated list of the authenticated user's transactions, newest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Param       from query string false "Start date (YYYY-MM-DD)"
// @Param       to query string false "End date (YYYY-MM-DD)"
// @Param       type query string false "Filter by type (income/expense)"
// @Param       card_id query int false "Filter by card"
// @Param       category_id query int false "Filter by category"
// @Param       income_type_id query int false "Filter by income type"
// @Success     200 {array} TransactionResponse "List of transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query transactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": result})
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating an existing transaction
// @Summary     Update a transaction
// @Description Update the description, amount or date of a single transaction row
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} TransactionResponse "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD format"))
			return
		}
		date = &parsed
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, req.Description, req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles the removal of a transaction
// @Summary     Delete a transaction
// @Description Delete a single transaction row. Deleting one installment sibling leaves the rest of the plan untouched.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted"})
}

// exportHeaders are the column titles of the XLSX export, in column order.
var exportHeaders = []string{"Date", "Description", "Type", "Amount", "Card", "Category", "Income Type", "Installment"}

// ExportTransactions streams the user's full transaction history as an XLSX file
// @Summary     Export transactions
// @Description Download the authenticated user's full transaction history as an XLSX spreadsheet
// @Tags        transactions
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Success     200 {file} file "XLSX spreadsheet"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetAllUserTransactions(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, tx := range transactions {
		values := []interface{}{
			tx.Date.Format(dateLayout),
			tx.Description,
			string(tx.Type),
			tx.Amount,
			formatID(tx.CardID),
			formatID(tx.CategoryID),
			formatID(tx.IncomeTypeID),
			formatInstallment(&tx),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "H", 14)

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format(dateLayout))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := f.Write(c.Writer); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
}

func formatID(id *uint) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("%d", *id)
}

func formatInstallment(tx *models.Transaction) string {
	if !tx.HasInstallments() {
		return ""
	}
	return fmt.Sprintf("%d/%d", *tx.InstallmentCurrent, *tx.InstallmentTotal)
}
