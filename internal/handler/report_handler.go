package handler

import (
	"net/http"

	"warehouse/internal/middleware"
	"warehouse/internal/service"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/dashboard", middleware.RequireAnyRole(), h.Dashboard)
	}
}

// Dashboard handles GET /api/reports/dashboard
// @Summary      Dashboard statistics
// @Description  Aggregate request counts, inventory valuation and the low stock list
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=service.DashboardStats}
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(stats))
}
