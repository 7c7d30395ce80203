package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waoafrica/backoffice/internal/app/service/statistics"
	"github.com/waoafrica/backoffice/pkg/response"
)

// @Summary      Dashboard Statistics (Admin)
// @Description  Headline numbers for the back-office dashboard.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  statistics.DashboardStats
// @Router       /api/v1/admin/dashboard/stats [get]
func ApiDashboardStats(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := stats.DashboardStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Daily Paid Series (Admin)
// @Tags         Admin
// @Produce      json
// @Param        days  query  int  false  "trailing window in days"
// @Success      200  {array}  statistics.DailyPoint
// @Router       /api/v1/admin/dashboard/daily-paid [get]
func ApiDailyPaidSeries(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.Query("days"))
		res, err := stats.DailyPaidSeries(c.Request.Context(), days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminStatsRoutes(r gin.IRouter, stats *statistics.Service) {
	r.GET("/dashboard/stats", ApiDashboardStats(stats))
	r.GET("/dashboard/daily-paid", ApiDailyPaidSeries(stats))
}
