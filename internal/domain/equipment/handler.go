package equipment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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

// Create registers a new piece of equipment.
// @Summary		Create equipment
// @Tags		Equipment
// @Security	BearerAuth
// @Param		request	body	CreateRequest	true	"equipment"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/equipment [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSerialAlreadyExists):
			response.CustomError(c, http.StatusConflict, "SERIAL_ALREADY_EXISTS", err)
		case errors.Is(err, status.ErrNotFound):
			response.CustomError(c, http.StatusNotFound, "STATUS_NOT_FOUND", err)
		default:
			response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create equipment")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"equipment": e})
}

// Get returns equipment with its current status.
// @Summary		Get equipment
// @Tags		Equipment
// @Security	BearerAuth
// @Param		id	path	int	true	"equipment id"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/equipment/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment ID")
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
			return
		}
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": e})
}
