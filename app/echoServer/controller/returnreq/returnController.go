package returnctrl

import (
	"log/slog"
	"net/http"

	"github.com/azur-14/bookworm/model"
	returnsvc "github.com/azur-14/bookworm/service/returns"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc returnsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateReturnReq struct {
	BorrowRequestID string `json:"borrow_request_id" validate:"required"`
}

type UpdateStatusReq struct {
	NewStatus   string  `json:"newStatus" validate:"required,returnstatus"`
	ChangedBy   string  `json:"changedBy" validate:"required"`
	Reason      string  `json:"reason"`
	Condition   *string `json:"condition"`
	ReturnImage *string `json:"return_image"`
}

// POST /api/returnRequest
func (h *Controller) Create(c echo.Context) error {
	var req CreateReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.Create(c.Request().Context(), req.BorrowRequestID)
	if err != nil {
		if apperr.Code(err) != apperr.ErrConflict {
			h.Log.Error("return create", "borrow_request_id", req.BorrowRequestID, "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusCreated, out)
}

// PUT /api/returnRequest/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("id"), returnsvc.UpdateReq{
		Status:      model.ReturnStatus(req.NewStatus),
		ChangedBy:   req.ChangedBy,
		Reason:      req.Reason,
		Condition:   req.Condition,
		ReturnImage: req.ReturnImage,
	})
	if err != nil {
		if apperr.Code(err) != apperr.ErrNotFound {
			h.Log.Error("return status update", "return_id", c.Param("id"), "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated and history recorded"})
}

// GET /api/returnRequest/user/:userId
func (h *Controller) ListByUser(c echo.Context) error {
	out, err := h.Svc.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		h.Log.Error("return list by user", "user_id", c.Param("userId"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, out)
}
