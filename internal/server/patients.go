package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prepmate/prepmate/internal/patients"
)

// PatientsHandler exposes the JSON-file-backed patient registry.
type PatientsHandler struct {
	Store *patients.Store
}

func (h *PatientsHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/sorted", h.sorted)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *PatientsHandler) list(c echo.Context) error {
	items, err := h.Store.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PatientsHandler) sorted(c echo.Context) error {
	field := c.QueryParam("sort_by")
	order := c.QueryParam("order")
	if order == "" {
		order = "asc"
	}
	items, err := h.Store.Sorted(field, order)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PatientsHandler) get(c echo.Context) error {
	p, err := h.Store.Get(c.Param("id"))
	if err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PatientsHandler) create(c echo.Context) error {
	var p patients.Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	created, err := h.Store.Create(p)
	if err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *PatientsHandler) update(c echo.Context) error {
	var u patients.Update
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&u); err != nil {
		return err
	}
	updated, err := h.Store.Apply(c.Param("id"), u)
	if err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *PatientsHandler) remove(c echo.Context) error {
	if err := h.Store.Delete(c.Param("id")); err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "patient deleted"})
}

func patientError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, patients.ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, patients.ErrPatientExists):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
