package billctrl

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/azur-14/bookworm/model"
	billsvc "github.com/azur-14/bookworm/service/bill"
	"github.com/azur-14/bookworm/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc billsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateBillReq struct {
	RequestID      string     `json:"borrowRequestId" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=book room"`
	OverdueDays    *int       `json:"overdueDays" validate:"omitempty,gte=0"`
	OverdueFee     *float64   `json:"overdueFee" validate:"omitempty,gte=0"`
	DamageFee      *float64   `json:"damageFee" validate:"omitempty,gte=0"`
	TotalFee       float64    `json:"totalFee" validate:"gte=0"`
	AmountReceived float64    `json:"amountReceived" validate:"gte=0"`
	Date           *time.Time `json:"date"`
}

// POST /api/bill
func (h *Controller) Create(c echo.Context) error {
	var req CreateBillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	b, err := h.Svc.Create(c.Request().Context(), billsvc.CreateReq{
		RequestID:      req.RequestID,
		Type:           model.BillType(req.Type),
		OverdueDays:    req.OverdueDays,
		OverdueFee:     req.OverdueFee,
		DamageFee:      req.DamageFee,
		TotalFee:       req.TotalFee,
		AmountReceived: req.AmountReceived,
		Date:           req.Date,
	})
	if err != nil {
		if apperr.Code(err) != apperr.ErrValidation {
			h.Log.Error("bill create", "request_id", req.RequestID, "err", err)
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /api/bill
func (h *Controller) ListAll(c echo.Context) error {
	out, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("bill list", "err", err)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, out)
}
