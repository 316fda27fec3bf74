package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prepmate/prepmate/internal/research"
)

// ResearchHandler exposes the evidence-grounded research assistant.
type ResearchHandler struct {
	Assistant *research.Assistant
}

func (h *ResearchHandler) Register(e *echo.Echo) {
	e.POST("/research", h.answer)
}

func (h *ResearchHandler) answer(c echo.Context) error {
	var req researchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	answer, err := h.Assistant.Answer(c.Request().Context(), req.Query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, researchResponse{Response: answer})
}
