package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"equiptrack/internal/domain/auth"
	"equiptrack/internal/pkg/response"
	"equiptrack/internal/pkg/validator"
)

type Handler struct {
	coordinator *Coordinator
}

func NewHandler(coordinator *Coordinator) *Handler {
	return &Handler{coordinator: coordinator}
}

// Create books equipment for an interval.
// @Summary		Create reservation
// @Tags		Reservations
// @Security	BearerAuth
// @Param		request	body	CreateRequest	true	"reservation"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/reservations [POST]
func (h *Handler) Create(c *gin.Context) {
	caller, ok := auth.CallerFrom(c)
	if !ok {
		response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	res, err := h.coordinator.Create(c.Request.Context(), caller, req.Input())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

// Update changes equipment, interval and status of a reservation. A terminal
// status returns the deleted reservation together with its history entry.
// @Summary		Update reservation
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id		path	int				true	"reservation id"
// @Param		request	body	UpdateRequest	true	"reservation"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/reservations/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	caller, ok := auth.CallerFrom(c)
	if !ok {
		response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	out, err := h.coordinator.Update(c.Request.Context(), caller, id, req.Input())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}

// Delete removes a reservation and frees its equipment.
// @Summary		Delete reservation
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id	path	int	true	"reservation id"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/reservations/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	caller, ok := auth.CallerFrom(c)
	if !ok {
		response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.coordinator.Delete(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res, "deleted": true})
}

// @Summary		Get reservation
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id	path	int	true	"reservation id"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/reservations/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.coordinator.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

// Availability reports whether [start,end] is free on the equipment.
// @Summary		Check availability
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id		path	int		true	"equipment id"
// @Param		start	query	string	true	"RFC3339"
// @Param		end		query	string	true	"RFC3339"
// @Param		exclude	query	int		false	"reservation id to ignore"
// @Success		200	{object}	map[string]interface{}
// @Router		/equipment/{id}/availability [GET]
func (h *Handler) Availability(c *gin.Context) {
	equipmentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	start, end, ok := parseWindow(c, "start", "end")
	if !ok {
		return
	}

	var exclude int64
	if raw := c.Query("exclude"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "exclude must be a reservation id")
			return
		}
		exclude = v
	}

	available, err := h.coordinator.Availability(c.Request.Context(), equipmentID, start, end, exclude)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AvailabilityResponse{
		EquipmentID: equipmentID,
		Start:       start.UTC(),
		End:         end.UTC(),
		Available:   available,
	})
}

// BusySlots lists reserved windows on the equipment.
// @Summary		Busy slots
// @Tags		Reservations
// @Security	BearerAuth
// @Param		id		path	int		true	"equipment id"
// @Param		from	query	string	true	"RFC3339"
// @Param		to		query	string	true	"RFC3339"
// @Success		200	{object}	map[string]interface{}
// @Router		/equipment/{id}/busy-slots [GET]
func (h *Handler) BusySlots(c *gin.Context) {
	equipmentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	from, to, ok := parseWindow(c, "from", "to")
	if !ok {
		return
	}

	slots, err := h.coordinator.BusySlots(c.Request.Context(), equipmentID, from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment_id": equipmentID, "slots": slots})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err)
	case errors.Is(err, ErrUnauthorized):
		response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, ErrConflict):
		response.CustomError(c, http.StatusConflict, "RESERVATION_CONFLICT", ErrConflict)
	default:
		_ = c.Error(err)
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.CustomError(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func parseWindow(c *gin.Context, fromKey, toKey string) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, c.Query(fromKey))
	if err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", fromKey+" must be an RFC3339 timestamp")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(time.RFC3339, c.Query(toKey))
	if err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", toKey+" must be an RFC3339 timestamp")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
