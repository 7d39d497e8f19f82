package handler

import (
	appcatalog "github.com/echodent/backend/internal/application/catalog"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

// ProcedureHandler handles catalog procedure endpoints
type ProcedureHandler struct {
	BaseHandler
	procedureService *appcatalog.ProcedureService
}

// NewProcedureHandler creates a new ProcedureHandler
func NewProcedureHandler(procedureService *appcatalog.ProcedureService) *ProcedureHandler {
	return &ProcedureHandler{procedureService: procedureService}
}

// CreateProcedureRequest represents a request to create a catalog procedure
type CreateProcedureRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	DefaultPrice string `json:"default_price" binding:"required,money"`
}

// UpdateProcedureRequest represents a request to update a catalog procedure
type UpdateProcedureRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	DefaultPrice *string `json:"default_price" binding:"omitempty,money"`
}

// Create adds a procedure to the price table
func (h *ProcedureHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}

	var req CreateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	price, err := valueobject.NewMoneyBRLFromString(req.DefaultPrice)
	if err != nil {
		h.BadRequest(c, "Invalid default price")
		return
	}

	procedure, err := h.procedureService.CreateProcedure(c.Request.Context(), actorID, req.Name, price)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, procedure)
}

// Update renames or reprices a procedure. Plans created earlier keep
// their frozen prices.
func (h *ProcedureHandler) Update(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}
	procedureID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procedure ID")
		return
	}

	var req UpdateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var price *valueobject.Money
	if req.DefaultPrice != nil {
		parsed, err := valueobject.NewMoneyBRLFromString(*req.DefaultPrice)
		if err != nil {
			h.BadRequest(c, "Invalid default price")
			return
		}
		price = &parsed
	}

	procedure, err := h.procedureService.UpdateProcedure(c.Request.Context(), actorID, procedureID, req.Name, price)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, procedure)
}

// Get returns one procedure
func (h *ProcedureHandler) Get(c *gin.Context) {
	procedureID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procedure ID")
		return
	}

	procedure, err := h.procedureService.GetProcedure(c.Request.Context(), procedureID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, procedure)
}

// List returns the price table ordered by name
func (h *ProcedureHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.procedureService.ListProcedures(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// RegisterRoutes registers catalog procedure routes
func (h *ProcedureHandler) RegisterRoutes(rg *gin.RouterGroup) {
	procedures := rg.Group("/catalog/procedures")
	{
		procedures.POST("", h.Create)
		procedures.GET("", h.List)
		procedures.GET("/:id", h.Get)
		procedures.PUT("/:id", h.Update)
	}
}
