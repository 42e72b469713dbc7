//go:build structgen

package main

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/sublee/structgen"
)

type Book struct {
	id    uint64
	title string
	pages uint64
}

var _ = structgen.Derive[Book](
	structgen.Fields(),
	structgen.Values(),
	structgen.BuilderDynamic(),
	structgen.Default(Book{}.pages, 0),
	structgen.Enum(),
	structgen.EnumDerive(structgen.DeriveString),
)

// jsonValue lifts field values into JSON values.
type jsonValue struct{}

func (jsonValue) FromUint64(v uint64) any { return v }
func (jsonValue) FromString(v string) any { return v }

// library keeps books in memory.
type library struct {
	mu    sync.RWMutex
	books map[uint64]Book
}

func (l *library) fields(c echo.Context) error {
	return c.JSON(http.StatusOK, BookFields())
}

func (l *library) get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	l.mu.RLock()
	book, ok := l.books[id]
	l.mu.RUnlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	doc := make(map[string]any)
	for _, p := range BookFieldsAndValues[any](book, jsonValue{}) {
		doc[p.Field] = p.Value
	}
	return c.JSON(http.StatusOK, doc)
}

// debug lists the field values as enum variants, e.g., ["Uint64(42)",
// "String(Dune)", "Uint64(412)"].
func (l *library) debug(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	l.mu.RLock()
	book, ok := l.books[id]
	l.mu.RUnlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	var s []string
	for _, e := range book.Enums() {
		s = append(s, e.String())
	}
	return c.JSON(http.StatusOK, s)
}

func (l *library) post(c echo.Context) error {
	b := NewBookBuilder()
	for _, field := range BookFields() {
		v := c.FormValue(field)
		if v == "" {
			continue
		}

		switch field {
		case "id", "pages":
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+field)
			}
			if field == "id" {
				b = b.SetId(n)
			} else {
				b = b.SetPages(n)
			}
		case "title":
			b = b.SetTitle(v)
		}
	}

	book, err := b.Build()
	var missing BookBuilderErrors
	if errors.As(err, &missing) {
		// e.g., missing fields: id, title
		return echo.NewHTTPError(http.StatusUnprocessableEntity, missing.Error())
	}

	l.mu.Lock()
	l.books[book.id] = book
	l.mu.Unlock()
	return c.NoContent(http.StatusCreated)
}

func main() {
	lib := &library{books: make(map[uint64]Book)}

	e := echo.New()
	e.GET("/fields", lib.fields)
	e.GET("/books/:id", lib.get)
	e.GET("/books/:id/debug", lib.debug)
	e.POST("/books", lib.post)
	e.Logger.Fatal(e.Start(":8080"))
}
