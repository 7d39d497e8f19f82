// Package handler implements the gin HTTP handlers for the clinic's
// financial ledger API.
package handler

import (
	"errors"
	"net/http"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/infrastructure/logger"
	"github.com/echodent/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActorIDHeader names the staff member performing the request. The
// ledger attributes every write to it.
const ActorIDHeader = "X-Actor-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID minted by the logging middleware
func getRequestID(c *gin.Context) string {
	if id := c.Writer.Header().Get(logger.RequestIDHeader); id != "" {
		return id
	}
	return c.GetHeader(logger.RequestIDHeader)
}

// getActorID extracts the acting staff member's ID from the request
func getActorID(c *gin.Context) (uuid.UUID, error) {
	actorIDStr := c.GetHeader(ActorIDHeader)
	if actorIDStr == "" {
		return uuid.Nil, errors.New("actor ID header missing")
	}
	return uuid.Parse(actorIDStr)
}

// parseIDParam parses a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize, totalPages int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize, totalPages))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, message, requestID))
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, message, requestID))
}

// HandleDomainError converts domain errors to HTTP responses. The
// domain's error code travels to the client unchanged.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
