package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// AccountFiltersApplied echoes the filters of an account listing.
type AccountFiltersApplied struct {
	Search   *string `json:"search"`
	IsActive *bool   `json:"is_active"`
}

// AccountListMeta is the meta block of an account listing.
type AccountListMeta struct {
	Total          int                   `json:"total"`
	FiltersApplied AccountFiltersApplied `json:"filters_applied"`
}

// AccountListResponse is the account listing envelope.
type AccountListResponse struct {
	Message string           `json:"message"`
	Data    []models.Account `json:"data"`
	Meta    AccountListMeta  `json:"meta"`
}

// ListAccounts returns the user's accounts with their current balances
// @Summary     List accounts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       q         query string false "Case-insensitive name search"
// @Param       is_active query bool   false "Filter by active flag"
// @Success     200 {object} AccountListResponse "Accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Invalid filter"
// @Router      /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := apperrors.FieldErrors{}
	search := queryString(c, "q")
	if search == nil {
		search = queryString(c, "search")
	}
	isActive := queryBool(c, "is_active", fields)
	if err := fields.Err(); err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.AccountFilter{IsActive: isActive}
	if search != nil {
		filter.Search = *search
	}
	accounts, err := h.accountService.ListAccounts(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountListResponse{
		Message: "Accounts retrieved successfully",
		Data:    accounts,
		Meta: AccountListMeta{
			Total:          len(accounts),
			FiltersApplied: AccountFiltersApplied{Search: search, IsActive: isActive},
		},
	})
}

// CreateAccount creates an account
// @Summary     Create an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.AccountInput true "Account details"
// @Success     201 {object} Response{data=models.Account} "Account created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.AccountInput
	if err := bindJSON(c, &req, "starting_balance"); err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Account created successfully", account)
}

// GetAccount returns one account
// @Summary     Get an account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} Response{data=models.Account} "Account"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Account retrieved successfully", account)
}

// UpdateAccount applies a partial update to an account
// @Summary     Update an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                       true "Account ID"
// @Param       request body services.AccountUpdateFields true "Fields to change"
// @Success     200 {object} Response{data=models.Account} "Account updated"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.AccountUpdateFields
	if err := bindJSON(c, &req, "starting_balance"); err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Account updated successfully", account)
}

// DeleteAccount removes an account without transactions
// @Summary     Delete an account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} Response "Account deleted"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     422 {object} ErrorResponse "Account has transactions"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Account deleted successfully", nil)
}
