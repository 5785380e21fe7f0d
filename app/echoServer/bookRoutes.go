package echoServer

import (
	"github.com/azur-14/bookworm/app/echoServer/controller/book"
	copyctrl "github.com/azur-14/bookworm/app/echoServer/controller/copy"
	shelfctrl "github.com/azur-14/bookworm/app/echoServer/controller/shelf"

	"github.com/labstack/echo/v4"
)

type BookC struct {
	Book  *book.Controller
	Copy  *copyctrl.Controller
	Shelf *shelfctrl.Controller
}

func RegisterBookService(e *echo.Echo, c BookC) {
	api := e.Group("/api")

	api.POST("/books", c.Book.Create)
	api.GET("/books/titles", c.Book.Titles)
	api.GET("/books/:id", c.Book.Detail)
	api.PUT("/books/:id/quantity", c.Book.IncreaseQuantity)
	api.DELETE("/books/:id", c.Book.Delete)

	// bulk-update-shelf before :id so the literal segment wins
	api.PUT("/bookcopies/bulk-update-shelf", c.Copy.BulkUpdateShelf)
	api.PUT("/bookcopies/borrow/:bookId", c.Copy.Borrow)
	api.GET("/bookcopies/book/:bookId", c.Copy.ListByBook)
	api.GET("/bookcopies/available-count/:bookId", c.Copy.AvailableCount)
	api.PUT("/bookcopies/:id/status", c.Copy.UpdateStatus)
	api.PUT("/bookcopies/:id", c.Copy.Update)
	api.GET("/bookcopies/:id", c.Copy.Detail)

	api.POST("/shelves", c.Shelf.Create)
	api.GET("/shelves/available", c.Shelf.Available)
	api.GET("/shelves/:id", c.Shelf.Detail)
}
