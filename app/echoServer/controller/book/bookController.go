package book

import (
	"log/slog"
	"net/http"
	"strings"

	booksvc "github.com/azur-14/bookworm/service/book"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	b, err := h.Svc.Create(c.Request().Context(), booksvc.CreateReq{
		Image:         req.Image,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishYear:   req.PublishYear,
		CategoryID:    req.CategoryID,
		TotalQuantity: req.TotalQuantity,
		Description:   req.Description,
	})
	if err != nil {
		h.Log.Error("book create", "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Book added successfully", "book": b})
}

// PUT /api/books/:id/quantity
func (h *Controller) IncreaseQuantity(c echo.Context) error {
	var req IncreaseQuantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	b, err := h.Svc.IncreaseQuantity(c.Request().Context(), c.Param("id"), req.Add)
	if err != nil {
		h.Log.Error("book quantity increase", "book_id", c.Param("id"), "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /api/books/:id
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if apperr.Code(err) != apperr.ErrNotFound {
			h.Log.Error("book delete", "book_id", c.Param("id"), "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted"})
}

// GET /api/books/:id
func (h *Controller) Detail(c echo.Context) error {
	b, err := h.Svc.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if apperr.Code(err) != apperr.ErrNotFound {
			h.Log.Error("book detail", "book_id", c.Param("id"), "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, b)
}

// GET /api/books/titles?ids=b001,b002
func (h *Controller) Titles(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("ids"))
	var ids []string
	if raw != "" {
		ids = strings.Split(raw, ",")
	}
	titles, err := h.Svc.TitlesByIDs(c.Request().Context(), ids)
	if err != nil {
		h.Log.Error("title lookup", "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"titles": titles})
}
