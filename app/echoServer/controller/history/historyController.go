package historyctrl

import (
	"log/slog"
	"net/http"

	"github.com/azur-14/bookworm/model"
	historysvc "github.com/azur-14/bookworm/service/history"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc historysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type AppendReq struct {
	RequestID   string `json:"requestId" validate:"required"`
	RequestType string `json:"requestType" validate:"required,oneof=borrow return room"`
	OldStatus   string `json:"oldStatus" validate:"required"`
	NewStatus   string `json:"newStatus" validate:"required"`
	ChangedBy   string `json:"changedBy" validate:"required"`
	Reason      string `json:"reason"`
}

// POST /api/requestStatusHistory
func (h *Controller) Append(c echo.Context) error {
	var req AppendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	err := h.Svc.Append(c.Request().Context(), model.StatusHistory{
		RequestID:   req.RequestID,
		RequestType: model.RequestKind(req.RequestType),
		OldStatus:   req.OldStatus,
		NewStatus:   req.NewStatus,
		ChangedBy:   req.ChangedBy,
		Reason:      req.Reason,
	})
	if err != nil {
		h.Log.Error("history append", "request_id", req.RequestID, "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "history recorded"})
}

// GET /api/requestStatusHistory/:requestId
func (h *Controller) Get(c echo.Context) error {
	out, err := h.Svc.History(c.Request().Context(), c.Param("requestId"))
	if err != nil {
		h.Log.Error("history get", "request_id", c.Param("requestId"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, out)
}
