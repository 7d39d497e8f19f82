package handler

import (
	appledger "github.com/echodent/backend/internal/application/ledger"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanHandler handles treatment plan endpoints
type PlanHandler struct {
	BaseHandler
	planService *appledger.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *appledger.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// PlanLineRequest is one line item on a plan request. Either a catalog
// procedure reference or a free-form name with an explicit price.
type PlanLineRequest struct {
	ProcedureID   *string `json:"procedure_id" binding:"omitempty,uuid"`
	Name          string  `json:"name" binding:"max=200"`
	Price         *string `json:"price" binding:"omitempty,money"`
	ToothFaceNote string  `json:"tooth_face_note" binding:"max=100"`
}

// CreatePlanRequest represents a request to open a proposed plan
type CreatePlanRequest struct {
	PatientID string            `json:"patient_id" binding:"required,uuid"`
	DentistID *string           `json:"dentist_id" binding:"omitempty,uuid"`
	Lines     []PlanLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ApprovePlanRequest represents a request to approve a plan
type ApprovePlanRequest struct {
	Discount string `json:"discount" binding:"omitempty,money"`
}

// ReplaceLinesRequest represents a request to swap a plan's line items
type ReplaceLinesRequest struct {
	Lines []PlanLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CancelPlanRequest represents a request to cancel a plan
type CancelPlanRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// StandaloneReceiptRequest represents a request for a one-off settled charge
type StandaloneReceiptRequest struct {
	PatientID   string  `json:"patient_id" binding:"required,uuid"`
	DentistID   *string `json:"dentist_id" binding:"omitempty,uuid"`
	Amount      string  `json:"amount" binding:"required,money"`
	Description string  `json:"description" binding:"required,max=200"`
}

// Create opens a PROPOSED plan, freezing catalog prices at this moment
func (h *PlanHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		h.BadRequest(c, "Invalid patient ID")
		return
	}
	dentistID, err := parseOptionalUUID(req.DentistID)
	if err != nil {
		h.BadRequest(c, "Invalid dentist ID")
		return
	}
	lines, err := toLineRequests(req.Lines)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), appledger.CreatePlanRequest{
		ActorID:   actorID,
		PatientID: patientID,
		DentistID: dentistID,
		Lines:     lines,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, plan)
}

// Get returns a plan with its derived balance
func (h *PlanHandler) Get(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	detail, err := h.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, detail)
}

// Approve seals a plan with an optional discount
func (h *PlanHandler) Approve(c *gin.Context) {
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

	var req ApprovePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	discount := valueobject.ZeroBRL()
	if req.Discount != "" {
		discount, err = valueobject.NewMoneyBRLFromString(req.Discount)
		if err != nil {
			h.BadRequest(c, "Invalid discount amount")
			return
		}
	}

	plan, err := h.planService.ApprovePlan(c.Request.Context(), actorID, planID, discount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// ReplaceLines swaps the line items of a proposed plan
func (h *PlanHandler) ReplaceLines(c *gin.Context) {
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

	var req ReplaceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	lines, err := toLineRequests(req.Lines)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	plan, err := h.planService.ReplaceLines(c.Request.Context(), actorID, planID, lines)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// Complete marks a plan's treatment as finished
func (h *PlanHandler) Complete(c *gin.Context) {
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

	plan, err := h.planService.CompletePlan(c.Request.Context(), actorID, planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// Cancel abandons a plan with a written reason
func (h *PlanHandler) Cancel(c *gin.Context) {
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

	var req CancelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.CancelPlan(c.Request.Context(), actorID, planID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// CreateReceipt records a one-off charge settled on the spot
func (h *PlanHandler) CreateReceipt(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}

	var req StandaloneReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		h.BadRequest(c, "Invalid patient ID")
		return
	}
	dentistID, err := parseOptionalUUID(req.DentistID)
	if err != nil {
		h.BadRequest(c, "Invalid dentist ID")
		return
	}
	amount, err := valueobject.NewMoneyBRLFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	plan, err := h.planService.CreateStandaloneReceipt(c.Request.Context(), actorID, patientID, dentistID, amount, req.Description)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, plan)
}

// ListByPatient returns a patient's plans, newest first
func (h *PlanHandler) ListByPatient(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid patient ID")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.planService.ListPlansByPatient(c.Request.Context(), patientID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// PatientBalance returns the signed outstanding balance across all of a
// patient's committed plans
func (h *PlanHandler) PatientBalance(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid patient ID")
		return
	}

	balance, err := h.planService.GetPatientBalance(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"patient_id": patientID, "balance_due": balance})
}

// RegisterRoutes registers plan routes
func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/ledger/plans")
	{
		plans.POST("", h.Create)
		plans.GET("/:id", h.Get)
		plans.POST("/:id/approve", h.Approve)
		plans.PUT("/:id/lines", h.ReplaceLines)
		plans.POST("/:id/complete", h.Complete)
		plans.POST("/:id/cancel", h.Cancel)
	}
	rg.POST("/ledger/receipts", h.CreateReceipt)
	rg.GET("/ledger/patients/:id/plans", h.ListByPatient)
	rg.GET("/ledger/patients/:id/balance", h.PatientBalance)
}

// toLineRequests converts wire line items to application line requests
func toLineRequests(reqs []PlanLineRequest) ([]appledger.PlanLineRequest, error) {
	lines := make([]appledger.PlanLineRequest, 0, len(reqs))
	for _, req := range reqs {
		line := appledger.PlanLineRequest{
			Name:          req.Name,
			ToothFaceNote: req.ToothFaceNote,
		}
		if req.ProcedureID != nil {
			procedureID, err := uuid.Parse(*req.ProcedureID)
			if err != nil {
				return nil, shared.NewValidationError("Invalid procedure ID on plan line")
			}
			line.ProcedureID = &procedureID
		}
		if req.Price != nil {
			price, err := decimal.NewFromString(*req.Price)
			if err != nil {
				return nil, shared.NewValidationError("Invalid price on plan line")
			}
			line.PriceOverride = &price
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// parseOptionalUUID parses an optional UUID string
func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
