package api

import (
	models "StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/tableview"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler exposes the dashboard view model and its table state
// over Echo-based HTTP handlers.
type DashboardEchoHandler struct {
	logger    *xlogger.Logger
	refresher *usecase.Refresher
	gateway   domrepo.DashboardGateway
}

func NewDashboardEchoHandler(logger *xlogger.Logger, refresher *usecase.Refresher, gateway domrepo.DashboardGateway) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, refresher: refresher, gateway: gateway}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/dashboard/rows", h.Rows)
	g.POST("/dashboard/sort", h.Sort)
	g.POST("/dashboard/filter", h.Filter)
	g.POST("/dashboard/refresh", h.Refresh)
	g.GET("/health", h.Health)
}

// TableState echoes the table's sort and filter after a mutation.
type TableState struct {
	SortField     tableview.SortField `json:"sortField"`
	SortDirection tableview.Direction `json:"sortDirection"`
	Filter        string              `json:"filter"`
}

// RowsResult pairs the visible rows with the state that produced them.
type RowsResult struct {
	Rows  []models.RecommendationRecord `json:"rows"`
	Total int                           `json:"total"`
	State TableState                    `json:"state"`
}

func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.refresher.Dashboard())
}

func (h *DashboardEchoHandler) Rows(c echo.Context) error {
	req := &models.RowsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows := h.refresher.Rows(req.Limit)
	field, dir, filter := h.refresher.TableState()
	return xhttp.SuccessResponse(c, RowsResult{
		Rows:  rows,
		Total: len(rows),
		State: TableState{SortField: field, SortDirection: dir, Filter: filter},
	})
}

func (h *DashboardEchoHandler) Sort(c echo.Context) error {
	req := &models.SortRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	field, dir, filter := h.refresher.Sort(tableview.SortField(req.Field))
	return xhttp.SuccessResponse(c, TableState{SortField: field, SortDirection: dir, Filter: filter})
}

func (h *DashboardEchoHandler) Filter(c echo.Context) error {
	req := &models.FilterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	field, dir, filter := h.refresher.Filter(req.Sentiment)
	return xhttp.SuccessResponse(c, TableState{SortField: field, SortDirection: dir, Filter: filter})
}

// Refresh starts a new cycle and returns immediately. The caller polls
// GET /api/dashboard for the result.
func (h *DashboardEchoHandler) Refresh(c echo.Context) error {
	h.refresher.TriggerManual()
	return xhttp.AcceptedResponse(c, map[string]bool{"refreshing": true})
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	if err := h.gateway.Health(c.Request().Context()); err != nil {
		h.logger.Warn("upstream health check failed", xlogger.Error(err))
		return xhttp.ServiceUnavailableResponse(c, map[string]string{
			"status":   "degraded",
			"upstream": err.Error(),
		})
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
