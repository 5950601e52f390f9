package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/report"
	"brewbooks/internal/services"
)

// ReportHandler renders downloadable transaction reports.
type ReportHandler struct {
	transactionService services.TransactionServicer
	userService        services.UserServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(transactionService services.TransactionServicer, userService services.UserServicer) *ReportHandler {
	return &ReportHandler{transactionService: transactionService, userService: userService}
}

// TransactionsReport renders the user's transactions as PDF or XLSX
// @Summary     Transactions report
// @Tags        reports
// @Produce     application/pdf
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       from_date   query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date     query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       account_id  query string false "Account ID"
// @Param       category_id query string false "Category ID"
// @Param       format      query string false "pdf (default) or xlsx"
// @Success     200 {file} file "Report document"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Failure     422 {object} ErrorResponse "Invalid filter"
// @Router      /reports/transactions [get]
func (h *ReportHandler) TransactionsReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := apperrors.FieldErrors{}
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		fields.Add("format", "The selected format is invalid.")
	}
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
	transactions, err := h.transactionService.ListAllTransactions(userID, services.TransactionFilter{
		AccountID:  filter.AccountID,
		CategoryID: filter.CategoryID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}, services.TransactionSort{By: services.SortByDate, Order: "desc"})
	if err != nil {
		respondWithError(c, err)
		return
	}

	data := report.Data{
		Transactions: transactions,
		Statistics:   *stats,
		FromDate:     filter.FromDate,
		ToDate:       filter.ToDate,
		GeneratedAt:  time.Now().UTC(),
	}
	if user, err := h.userService.GetUserByID(userID); err == nil {
		data.Owner = user.Name
	}

	var buf bytes.Buffer
	render := report.RenderPDF
	if format == report.FormatXLSX {
		render = report.RenderXLSX
	}
	if err := render(&buf, data); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	filename := report.Filename(format, data.GeneratedAt)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
