package history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"equiptrack/internal/domain/auth"
	"equiptrack/internal/domain/equipment"
	"equiptrack/internal/domain/status"
	"equiptrack/internal/pkg/response"
	"equiptrack/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Record appends an issuance event and updates the equipment status.
// @Summary		Record history
// @Tags		History
// @Security	BearerAuth
// @Param		request	body	RecordRequest	true	"event"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/history [POST]
func (h *Handler) Record(c *gin.Context) {
	caller, ok := auth.CallerFrom(c)
	if !ok {
		response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	entry, err := h.service.RecordIssuance(c.Request.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", err)
		case errors.Is(err, ErrValidation):
			response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err)
		case errors.Is(err, equipment.ErrNotFound),
			errors.Is(err, auth.ErrUserNotFound),
			errors.Is(err, status.ErrNotFound):
			response.CustomError(c, http.StatusNotFound, "NOT_FOUND", err)
		default:
			_ = c.Error(err)
			response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record history")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"history": entry})
}

// Get returns one history entry.
// @Summary		Get history entry
// @Tags		History
// @Security	BearerAuth
// @Param		id	path	int	true	"history id"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/history/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_ID", "Invalid history ID")
		return
	}

	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "History entry not found")
			return
		}
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load history entry")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"history": entry})
}
