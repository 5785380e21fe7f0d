package borrowctrl

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/azur-14/bookworm/model"
	borrowsvc "github.com/azur-14/bookworm/service/borrow"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc borrowsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/borrowRequest
func (h *Controller) Create(c echo.Context) error {
	var req CreateBorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.Create(c.Request().Context(), borrowsvc.CreateReq{
		UserID:      req.UserID,
		BookID:      req.BookID,
		RequestDate: req.RequestDate,
		ReceiveDate: req.ReceiveDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if apperr.Code(err) != apperr.ErrNotFound {
			h.Log.Error("borrow create", "user_id", req.UserID, "book_id", req.BookID, "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Borrow request created.",
		"request": out.Request,
		"copy":    out.Copy,
	})
}

// PUT /api/borrowRequest/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("id"),
		model.BorrowStatus(req.NewStatus), req.ChangedBy, req.Reason)
	if err != nil {
		if apperr.Code(err) != apperr.ErrNotFound {
			h.Log.Error("borrow status update", "request_id", c.Param("id"), "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated and history recorded"})
}

// GET /api/borrowRequest/check/:userId/:bookId
func (h *Controller) Check(c echo.Context) error {
	ok, err := h.Svc.AlreadyBorrowed(c.Request().Context(), c.Param("userId"), c.Param("bookId"))
	if err != nil {
		h.Log.Error("borrow check", "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"alreadyBorrowed": ok})
}

// GET /api/borrowRequest
func (h *Controller) ListAll(c echo.Context) error {
	out, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("borrow list", "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/borrowRequest/user/:userId
func (h *Controller) ListByUser(c echo.Context) error {
	out, err := h.Svc.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		h.Log.Error("borrow list by user", "user_id", c.Param("userId"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/borrowRequest/stuck?olderThan=30m
func (h *Controller) Stuck(c echo.Context) error {
	olderThan := time.Hour
	if raw := c.QueryParam("olderThan"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid olderThan duration"})
		}
		olderThan = d
	}
	out, err := h.Svc.ListStuck(c.Request().Context(), olderThan)
	if err != nil {
		h.Log.Error("stuck request list", "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, out)
}
