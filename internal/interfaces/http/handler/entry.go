package handler

import (
	appledger "github.com/echodent/backend/internal/application/ledger"
	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

// EntryHandler handles ledger entry endpoints
type EntryHandler struct {
	BaseHandler
	entryService *appledger.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *appledger.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	Amount         string `json:"amount" binding:"required,money"`
	Method         string `json:"method" binding:"required,oneof=CASH CARD PIX TRANSFER CHECK"`
	EntryDate      string `json:"entry_date"`
	Description    string `json:"description" binding:"max=500"`
	InstallmentSeq *int   `json:"installment_seq" binding:"omitempty,min=1"`
}

// RecordAdjustmentRequest represents a request to record an adjustment
type RecordAdjustmentRequest struct {
	Amount    string `json:"amount" binding:"required,money"`
	EntryDate string `json:"entry_date"`
	Reason    string `json:"reason" binding:"required,max=500"`
}

// ReverseEntryRequest represents a request to reverse an entry
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// RecordPayment records money received against a plan
func (h *EntryHandler) RecordPayment(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := valueobject.NewMoneyBRLFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}
	entryDate, err := parseOptionalDate(req.EntryDate)
	if err != nil {
		h.BadRequest(c, "Invalid entry date, expected YYYY-MM-DD")
		return
	}

	entry, err := h.entryService.RecordPayment(c.Request.Context(), appledger.RecordPaymentRequest{
		ActorID:        actorID,
		PlanID:         planID,
		Amount:         amount,
		Method:         ledger.PaymentMethod(req.Method),
		EntryDate:      entryDate,
		Description:    req.Description,
		InstallmentSeq: req.InstallmentSeq,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// RecordAdjustment records a signed correction to a plan's effective total
func (h *EntryHandler) RecordAdjustment(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req RecordAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := valueobject.NewMoneyBRLFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}
	entryDate, err := parseOptionalDate(req.EntryDate)
	if err != nil {
		h.BadRequest(c, "Invalid entry date, expected YYYY-MM-DD")
		return
	}

	entry, err := h.entryService.RecordAdjustment(c.Request.Context(), appledger.RecordAdjustmentRequest{
		ActorID:   actorID,
		PlanID:    planID,
		Amount:    amount,
		EntryDate: entryDate,
		Reason:    req.Reason,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// Reverse voids a committed entry with a compensating entry
func (h *EntryHandler) Reverse(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	var req ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reversal, err := h.entryService.ReverseEntry(c.Request.Context(), actorID, entryID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, reversal)
}

// List returns a plan's full ledger in recording order
func (h *EntryHandler) List(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// RegisterRoutes registers ledger entry routes
func (h *EntryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ledger/plans/:id/payments", h.RecordPayment)
	rg.POST("/ledger/plans/:id/adjustments", h.RecordAdjustment)
	rg.GET("/ledger/plans/:id/entries", h.List)
	rg.POST("/ledger/entries/:id/reverse", h.Reverse)
}
