package handler

import (
	"time"

	appledger "github.com/echodent/backend/internal/application/ledger"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

// CashDayHandler handles cash-day closing endpoints
type CashDayHandler struct {
	BaseHandler
	cashDayService *appledger.CashDayService
}

// NewCashDayHandler creates a new CashDayHandler
func NewCashDayHandler(cashDayService *appledger.CashDayService) *CashDayHandler {
	return &CashDayHandler{cashDayService: cashDayService}
}

// CloseDayRequest represents a request to close a cash day
type CloseDayRequest struct {
	SettledTotal *string `json:"settled_total" binding:"omitempty,money"`
	Notes        string  `json:"notes" binding:"max=500"`
}

// GetSummary returns a date's entries and running payment total
func (h *CashDayHandler) GetSummary(c *gin.Context) {
	date, err := parseDateParam(c, "date")
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.cashDayService.GetDaySummary(c.Request.Context(), date)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Close seals a cash day, freezing the reconciled payment total
func (h *CashDayHandler) Close(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}
	date, err := parseDateParam(c, "date")
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var req CloseDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var settledTotal *valueobject.Money
	if req.SettledTotal != nil {
		total, err := valueobject.NewMoneyBRLFromString(*req.SettledTotal)
		if err != nil {
			h.BadRequest(c, "Invalid settled total")
			return
		}
		settledTotal = &total
	}

	day, err := h.cashDayService.CloseDay(c.Request.Context(), actorID, date, settledTotal, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, day)
}

// List returns closing records in a date range
func (h *CashDayHandler) List(c *gin.Context) {
	from, err := parseOptionalDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := parseOptionalDate(c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.cashDayService.ListDays(c.Request.Context(), from, to, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// RegisterRoutes registers cash-day routes
func (h *CashDayHandler) RegisterRoutes(rg *gin.RouterGroup) {
	days := rg.Group("/ledger/cash-days")
	{
		days.GET("", h.List)
		days.GET("/:date", h.GetSummary)
		days.POST("/:date/close", h.Close)
	}
}
