package roombookingctrl

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/azur-14/bookworm/model"
	roombookingsvc "github.com/azur-14/bookworm/service/roombooking"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc roombookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type SlotReq struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type CreateBookingReq struct {
	UserID       string    `json:"user_id" validate:"required"`
	RoomID       string    `json:"room_id" validate:"required"`
	Slots        []SlotReq `json:"slots" validate:"required,min=1,dive"`
	Purpose      string    `json:"purpose" validate:"required"`
	PricePerHour float64   `json:"price_per_hour" validate:"gte=0"`
}

type UpdateStatusReq struct {
	NewStatus string `json:"newStatus" validate:"required,roomstatus"`
	ChangedBy string `json:"changedBy" validate:"required"`
	Reason    string `json:"reason"`
}

// POST /api/room-booking
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	slots := make([]roombookingsvc.Slot, 0, len(req.Slots))
	for _, sl := range req.Slots {
		slots = append(slots, roombookingsvc.Slot{Start: sl.StartTime, End: sl.EndTime})
	}

	out, err := h.Svc.Create(c.Request().Context(), roombookingsvc.CreateReq{
		UserID:       req.UserID,
		RoomID:       req.RoomID,
		Slots:        slots,
		Purpose:      req.Purpose,
		PricePerHour: req.PricePerHour,
	})
	if err != nil {
		h.Log.Error("room booking create", "user_id", req.UserID, "room_id", req.RoomID, "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "booking requests created", "requests": out})
}

// PUT /api/room-booking/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("id"),
		model.RoomBookingStatus(req.NewStatus), req.ChangedBy, req.Reason)
	if err != nil {
		if apperr.Code(err) != apperr.ErrNotFound {
			h.Log.Error("room booking status update", "request_id", c.Param("id"), "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated and history recorded"})
}

// GET /api/room-booking/user/:userId
func (h *Controller) ListByUser(c echo.Context) error {
	out, err := h.Svc.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		h.Log.Error("room booking list by user", "user_id", c.Param("userId"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, out)
}
