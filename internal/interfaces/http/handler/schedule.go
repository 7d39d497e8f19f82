package handler

import (
	"time"

	appledger "github.com/echodent/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// ScheduleHandler handles installment forecast endpoints
type ScheduleHandler struct {
	BaseHandler
	scheduleService *appledger.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleService *appledger.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GenerateScheduleRequest represents a request to forecast installments
type GenerateScheduleRequest struct {
	Count        int    `json:"count" binding:"required,min=1,max=60"`
	FirstDueDate string `json:"first_due_date" binding:"required"`
}

// Generate replaces a plan's forecast with equal monthly shares
func (h *ScheduleHandler) Generate(c *gin.Context) {
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

	var req GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	firstDueDate, err := time.Parse(dateLayout, req.FirstDueDate)
	if err != nil {
		h.BadRequest(c, "Invalid first due date, expected YYYY-MM-DD")
		return
	}

	installments, err := h.scheduleService.GenerateSchedule(c.Request.Context(), actorID, planID, req.Count, firstDueDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, installments)
}

// Get returns a plan's forecast with derived per-installment statuses
func (h *ScheduleHandler) Get(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	schedule, err := h.scheduleService.GetSchedule(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, schedule)
}

// RegisterRoutes registers schedule routes
func (h *ScheduleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ledger/plans/:id/schedule", h.Generate)
	rg.GET("/ledger/plans/:id/schedule", h.Get)
}
