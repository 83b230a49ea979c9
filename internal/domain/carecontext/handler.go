package carecontext

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carenote/carenote/internal/aggregate"
	"github.com/carenote/carenote/internal/platform/auth"
	"github.com/carenote/carenote/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	read.GET("/context/categories", h.ListCategories)
	read.GET("/patients/:id/context", h.GetContext)
	read.GET("/patients/:id/context/prompt", h.GetPrompt)
	read.GET("/patients/:id/observations/:code/history", h.GetHistory)
}

func (h *Handler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Categories())
}

func (h *Handler) GetContext(c echo.Context) error {
	res, err := h.svc.Context(c.Request().Context(), c.Param("id"), h.selection(c), h.filters(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetPrompt(c echo.Context) error {
	res, err := h.svc.Prompt(c.Request().Context(), c.Param("id"), h.selection(c), h.filters(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetHistory(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "observation code is required")
	}
	var components []string
	if raw := c.QueryParam("components"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				components = append(components, name)
			}
		}
	}
	res, err := h.svc.History(c.Request().Context(), c.Param("id"), code, components)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	total := len(res.Items)
	res.Items = pagination.Page(res.Items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(res, total, pg.Limit, pg.Offset))
}

// selection parses the optional categories query param, a comma-separated
// list of category ids. Absent means every category.
func (h *Handler) selection(c echo.Context) map[string]bool {
	raw := c.QueryParam("categories")
	if raw == "" {
		return nil
	}
	sel := make(map[string]bool)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			sel[id] = true
		}
	}
	return sel
}

// filters collects the query params matching declared filter keys.
func (h *Handler) filters(c echo.Context) aggregate.FilterValues {
	fv := make(aggregate.FilterValues)
	for _, cat := range h.svc.Categories() {
		for _, d := range cat.Filters {
			if v := c.QueryParam(d.Key); v != "" {
				fv[d.Key] = v
			}
		}
	}
	return fv
}
