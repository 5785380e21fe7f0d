// Request-domain service: borrow orchestration, return tracking, status
// history ledger, room booking.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/azur-14/bookworm/app/echoServer"
	billctrl "github.com/azur-14/bookworm/app/echoServer/controller/bill"
	borrowctrl "github.com/azur-14/bookworm/app/echoServer/controller/borrow"
	historyctrl "github.com/azur-14/bookworm/app/echoServer/controller/history"
	returnctrl "github.com/azur-14/bookworm/app/echoServer/controller/returnreq"
	roombookingctrl "github.com/azur-14/bookworm/app/echoServer/controller/roombooking"
	"github.com/azur-14/bookworm/app/echoServer/validation"
	"github.com/azur-14/bookworm/config"
	billrepo "github.com/azur-14/bookworm/repository/bill"
	"github.com/azur-14/bookworm/repository/bookclient"
	borrowrepo "github.com/azur-14/bookworm/repository/borrow"
	historyrepo "github.com/azur-14/bookworm/repository/history"
	returnrepo "github.com/azur-14/bookworm/repository/returnreq"
	roombookingrepo "github.com/azur-14/bookworm/repository/roombooking"
	"github.com/azur-14/bookworm/repository/userclient"
	billsvc "github.com/azur-14/bookworm/service/bill"
	borrowsvc "github.com/azur-14/bookworm/service/borrow"
	historysvc "github.com/azur-14/bookworm/service/history"
	returnsvc "github.com/azur-14/bookworm/service/returns"
	roombookingsvc "github.com/azur-14/bookworm/service/roombooking"
	"github.com/azur-14/bookworm/util/database"

	"github.com/labstack/echo/v4"
)

func main() {

	cfg := config.LoadRequestService()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close(ctx)

	// repos
	br := borrowrepo.New(db.DB)
	rr := returnrepo.New(db.DB)
	hr := historyrepo.New(db.DB)
	rbr := roombookingrepo.New(db.DB)
	blr := billrepo.New(db.DB)

	// collaborator clients (endpoints injected from config)
	books := bookclient.NewHTTP(cfg.BookServiceURL)
	users := userclient.NewHTTP(cfg.UserServiceURL)

	// services
	hs := historysvc.New(hr, rr)
	bs := borrowsvc.New(br, books, users, hs, log)
	rs := returnsvc.New(rr, br, hs)
	rbs := roombookingsvc.New(rbr, hs)
	bls := billsvc.New(blr)

	// controllers
	val := validation.New()
	v := val.Instance()
	borrowC := &borrowctrl.Controller{Svc: bs, V: v, Log: log}
	returnC := &returnctrl.Controller{Svc: rs, V: v, Log: log}
	historyC := &historyctrl.Controller{Svc: hs, V: v, Log: log}
	roomC := &roombookingctrl.Controller{Svc: rbs, V: v, Log: log}
	billC := &billctrl.Controller{Svc: bls, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = val

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	echoServer.RegisterRequestService(e, echoServer.RequestC{
		Borrow:      borrowC,
		Return:      returnC,
		History:     historyC,
		RoomBooking: roomC,
		Bill:        billC,
	})

	log.Info("starting request service", "port", cfg.Port, "env", cfg.Env,
		"book_service", cfg.BookServiceURL, "user_service", cfg.UserServiceURL)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
