package echoServer

import (
	billctrl "github.com/azur-14/bookworm/app/echoServer/controller/bill"
	borrowctrl "github.com/azur-14/bookworm/app/echoServer/controller/borrow"
	historyctrl "github.com/azur-14/bookworm/app/echoServer/controller/history"
	returnctrl "github.com/azur-14/bookworm/app/echoServer/controller/returnreq"
	roombookingctrl "github.com/azur-14/bookworm/app/echoServer/controller/roombooking"

	"github.com/labstack/echo/v4"
)

type RequestC struct {
	Borrow      *borrowctrl.Controller
	Return      *returnctrl.Controller
	History     *historyctrl.Controller
	RoomBooking *roombookingctrl.Controller
	Bill        *billctrl.Controller
}

func RegisterRequestService(e *echo.Echo, c RequestC) {
	api := e.Group("/api")

	api.POST("/borrowRequest", c.Borrow.Create)
	api.GET("/borrowRequest", c.Borrow.ListAll)
	api.GET("/borrowRequest/stuck", c.Borrow.Stuck)
	api.GET("/borrowRequest/check/:userId/:bookId", c.Borrow.Check)
	api.GET("/borrowRequest/user/:userId", c.Borrow.ListByUser)
	api.PUT("/borrowRequest/:id/status", c.Borrow.UpdateStatus)

	api.POST("/returnRequest", c.Return.Create)
	api.PUT("/returnRequest/:id/status", c.Return.UpdateStatus)
	api.GET("/returnRequest/user/:userId", c.Return.ListByUser)

	api.POST("/requestStatusHistory", c.History.Append)
	api.GET("/requestStatusHistory/:requestId", c.History.Get)

	api.POST("/bill", c.Bill.Create)
	api.GET("/bill", c.Bill.ListAll)

	api.POST("/room-booking", c.RoomBooking.Create)
	api.PUT("/room-booking/:id/status", c.RoomBooking.UpdateStatus)
	api.GET("/room-booking/user/:userId", c.RoomBooking.ListByUser)
}
