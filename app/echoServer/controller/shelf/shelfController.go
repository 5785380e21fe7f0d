package shelfctrl

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/azur-14/bookworm/model"
	shelfrepo "github.com/azur-14/bookworm/repository/shelf"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

// Shelves are thin enough that the controller talks straight to the
// repository; capacity is never written here.
type Controller struct {
	Repo shelfrepo.Repo
	V    *validator.Validate
	Log  *slog.Logger
}

type CreateShelfReq struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	CapacityLimit int64  `json:"capacitylimit" validate:"required,gt=0"`
}

// POST /api/shelves
func (h *Controller) Create(c echo.Context) error {
	var req CreateShelfReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	ctx := c.Request().Context()
	id, err := h.Repo.NextID(ctx)
	if err != nil {
		h.Log.Error("shelf id", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	s := model.Shelf{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		CapacityLimit: req.CapacityLimit,
		TimeCreate:    time.Now().UTC(),
	}
	if err := h.Repo.Insert(ctx, s); err != nil {
		h.Log.Error("shelf create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, s)
}

// GET /api/shelves/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid shelf id"})
	}
	s, err := h.Repo.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "shelf not found"})
		}
		h.Log.Error("shelf detail", "shelf_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, s)
}

// GET /api/shelves/available
func (h *Controller) Available(c echo.Context) error {
	shelves, err := h.Repo.Available(c.Request().Context())
	if err != nil {
		h.Log.Error("shelf list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, shelves)
}
