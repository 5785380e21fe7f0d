package copyctrl

import (
	"log/slog"
	"net/http"

	"github.com/azur-14/bookworm/model"
	copyrepo "github.com/azur-14/bookworm/repository/copy"
	"github.com/azur-14/bookworm/service/allocator"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc allocator.Service
	V   *validator.Validate
	Log *slog.Logger
}

// PUT /api/bookcopies/borrow/:bookId
func (h *Controller) Borrow(c echo.Context) error {
	bookID := c.Param("bookId")
	if bookID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing book id"})
	}

	copy, err := h.Svc.Claim(c.Request().Context(), bookID)
	if err != nil {
		if apperr.Code(err) != apperr.ErrNotFound {
			h.Log.Error("copy claim", "book_id", bookID, "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "copy": copy})
}

// PUT /api/bookcopies/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	err := h.Svc.SetStatus(c.Request().Context(), c.Param("id"),
		model.CopyStatus(req.Status), req.DamageEvidence)
	if err != nil {
		h.Log.Error("copy status update", "copy_id", c.Param("id"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// PUT /api/bookcopies/:id
func (h *Controller) Update(c echo.Context) error {
	var req UpdateCopyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	patch := copyrepo.CopyPatch{
		ShelfID:        req.ShelfID,
		DamageEvidence: req.DamageEvidence,
	}
	if req.Status != nil {
		st := model.CopyStatus(*req.Status)
		patch.Status = &st
	}

	copy, err := h.Svc.UpdateCopy(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		h.Log.Error("copy update", "copy_id", c.Param("id"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, copy)
}

// PUT /api/bookcopies/bulk-update-shelf
func (h *Controller) BulkUpdateShelf(c echo.Context) error {
	var req BulkUpdateShelfReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	n, err := h.Svc.ReassignShelf(c.Request().Context(), req.IDs, req.ShelfID)
	if err != nil {
		h.Log.Error("bulk shelf assign", "shelf_id", req.ShelfID, "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "shelf assigned", "updated": n})
}

// GET /api/bookcopies/book/:bookId
func (h *Controller) ListByBook(c echo.Context) error {
	copies, err := h.Svc.CopiesByBook(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		h.Log.Error("copy list by book", "book_id", c.Param("bookId"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, copies)
}

// GET /api/bookcopies/available-count/:bookId
func (h *Controller) AvailableCount(c echo.Context) error {
	n, err := h.Svc.AvailableCount(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		h.Log.Error("available count", "book_id", c.Param("bookId"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"availableCount": n})
}

// GET /api/bookcopies/:id
func (h *Controller) Detail(c echo.Context) error {
	copy, err := h.Svc.CopyByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if apperr.Code(err) != apperr.ErrNotFound {
			h.Log.Error("copy detail", "copy_id", c.Param("id"), "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, copy)
}
