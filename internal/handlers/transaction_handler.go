package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/pagination"
	"brewbooks/internal/services"
)

// TransactionHandler handles transaction, transfer and statistics requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	transferService    services.TransferServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, transferService services.TransferServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, transferService: transferService}
}

// TransactionListResponse is the paginated transaction listing envelope.
type TransactionListResponse struct {
	Message    string               `json:"message"`
	Data       []models.Transaction `json:"data"`
	Pagination pagination.Meta      `json:"pagination"`
}

// parseTransactionFilter reads the listing filters shared by the list and
// report endpoints.
func parseTransactionFilter(c *gin.Context, fields apperrors.FieldErrors) (services.TransactionFilter, services.TransactionSort) {
	filter := services.TransactionFilter{
		AccountID:  queryString(c, "account_id"),
		CategoryID: queryString(c, "category_id"),
		FromDate:   queryDate(c, "from_date", fields),
		ToDate:     queryDate(c, "to_date", fields),
		MinAmount:  queryAmount(c, "min_amount", fields),
		MaxAmount:  queryAmount(c, "max_amount", fields),
	}
	if q := queryString(c, "q"); q != nil {
		filter.Search = *q
	} else if q := queryString(c, "search"); q != nil {
		filter.Search = *q
	}
	if t := queryString(c, "type"); t != nil {
		txType := models.TransactionType(*t)
		if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
			fields.Add("type", "The selected type is invalid.")
		} else {
			filter.Type = &txType
		}
	}

	sort := services.TransactionSort{By: c.Query("sort_by"), Order: c.Query("sort_order")}
	return filter, sort
}

// ListTransactions returns one page of the user's transactions
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       account_id  query string false "Account ID"
// @Param       category_id query string false "Category ID"
// @Param       type        query string false "income or expense"
// @Param       from_date   query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date     query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       q           query string false "Search note or counterparty"
// @Param       min_amount  query string false "Minimum amount"
// @Param       max_amount  query string false "Maximum amount"
// @Param       sort_by     query string false "date, amount or created_at"
// @Param       sort_order  query string false "asc or desc"
// @Param       page        query int    false "Page number"
// @Param       per_page    query int    false "Items per page (max 100)"
// @Success     200 {object} TransactionListResponse "Transactions"
// @Failure     422 {object} ErrorResponse "Invalid filter"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := apperrors.FieldErrors{}
	filter, sort := parseTransactionFilter(c, fields)
	page := pagination.PageRequest{
		Page:    queryInt(c, "page", fields),
		PerPage: queryInt(c, "per_page", fields),
	}
	if err := fields.Err(); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(userID, filter, sort, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Message:    "Transactions retrieved successfully",
		Data:       result.Data,
		Pagination: result.Pagination,
	})
}

// CreateTransaction records an income or expense
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.TransactionInput true "Transaction details"
// @Success     201 {object} Response{data=models.Transaction} "Transaction created"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.TransactionInput
	if err := bindJSON(c, &req, "amount"); err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Transaction created successfully", transaction)
}

// GetTransaction returns one transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} Response{data=models.Transaction} "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Transaction retrieved successfully", transaction)
}

// UpdateTransaction applies a partial update to a standalone transaction
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                           true "Transaction ID"
// @Param       request body services.TransactionUpdateFields true "Fields to change"
// @Success     200 {object} Response{data=models.Transaction} "Transaction updated"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     422 {object} ErrorResponse "Validation failed or transfer leg"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.TransactionUpdateFields
	if err := bindJSON(c, &req, "amount"); err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Transaction updated successfully", transaction)
}

// DeleteTransaction removes a transaction, or both legs of a transfer
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} Response "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Transaction deleted successfully", nil)
}

// CreateTransfer moves money between two of the user's accounts
// @Summary     Create a transfer
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.TransferInput true "Transfer details"
// @Success     201 {object} Response{data=services.TransferResult} "Transfer created"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /transactions/transfer [post]
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.TransferInput
	if err := bindJSON(c, &req, "amount"); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transferService.CreateTransfer(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Transfer created successfully", result)
}

// GetStatistics aggregates income and expense totals
// @Summary     Transaction statistics
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       from_date   query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date     query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       account_id  query string false "Account ID"
// @Param       category_id query string false "Category ID"
// @Success     200 {object} Response{data=services.Statistics} "Statistics"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Failure     422 {object} ErrorResponse "Invalid filter"
// @Router      /transactions-statistics [get]
func (h *TransactionHandler) GetStatistics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := apperrors.FieldErrors{}
	filter := services.StatisticsFilter{
		FromDate:   queryDate(c, "from_date", fields),
		ToDate:     queryDate(c, "to_date", fields),
		AccountID:  queryString(c, "account_id"),
		CategoryID: queryString(c, "category_id"),
	}
	if err := fields.Err(); err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.transactionService.ComputeStatistics(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Transaction statistics retrieved successfully", stats)
}
