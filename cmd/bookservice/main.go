// Book-domain service: book lifecycle, copy allocation, shelf capacity.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/azur-14/bookworm/app/echoServer"
	"github.com/azur-14/bookworm/app/echoServer/controller/book"
	copyctrl "github.com/azur-14/bookworm/app/echoServer/controller/copy"
	shelfctrl "github.com/azur-14/bookworm/app/echoServer/controller/shelf"
	"github.com/azur-14/bookworm/app/echoServer/validation"
	"github.com/azur-14/bookworm/config"
	bookrepo "github.com/azur-14/bookworm/repository/book"
	copyrepo "github.com/azur-14/bookworm/repository/copy"
	shelfrepo "github.com/azur-14/bookworm/repository/shelf"
	"github.com/azur-14/bookworm/service/allocator"
	booksvc "github.com/azur-14/bookworm/service/book"
	"github.com/azur-14/bookworm/util/database"

	"github.com/labstack/echo/v4"
)

func main() {

	cfg := config.LoadBookService()
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
	cr := copyrepo.New(db.DB)
	br := bookrepo.New(db.DB)
	sr := shelfrepo.New(db.DB)

	// services
	as := allocator.New(cr)
	bs := booksvc.New(br, as)

	// controllers
	val := validation.New()
	v := val.Instance()
	bookC := &book.Controller{Svc: bs, V: v, Log: log}
	copyC := &copyctrl.Controller{Svc: as, V: v, Log: log}
	shelfC := &shelfctrl.Controller{Repo: sr, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = val

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	echoServer.RegisterBookService(e, echoServer.BookC{
		Book:  bookC,
		Copy:  copyC,
		Shelf: shelfC,
	})

	log.Info("starting book service", "port", cfg.Port, "env", cfg.Env)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
