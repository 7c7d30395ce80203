package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waoafrica/backoffice/internal/app/service/notificationcenter"
	"github.com/waoafrica/backoffice/pkg/response"
)

// @Summary      List Notifications (Admin)
// @Description  Returns the back-office notification feed, newest first.
// @Tags         Admin
// @Produce      json
// @Param        limit   query  int  false  "page size"
// @Param        offset  query  int  false  "page offset"
// @Success      200  {object}  notificationcenter.ListResponse
// @Router       /api/v1/admin/notifications [get]
func ApiListNotifications(feed *notificationcenter.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		res, err := feed.List(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Mark Notification Read (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id  path  string  true  "notification id"
// @Success      200  {object}  map[string]string
// @Router       /api/v1/admin/notifications/{id}/read [post]
func ApiMarkNotificationRead(feed *notificationcenter.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := feed.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, notificationcenter.ErrNotificationNotFound) {
				c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "ok"}))
	}
}

// @Summary      Mark All Notifications Read (Admin)
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/admin/notifications/read-all [post]
func ApiMarkAllNotificationsRead(feed *notificationcenter.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := feed.MarkAllRead(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "ok"}))
	}
}

func RegisterAdminNotificationRoutes(r gin.IRouter, feed *notificationcenter.Service) {
	r.GET("/notifications", ApiListNotifications(feed))
	r.POST("/notifications/:id/read", ApiMarkNotificationRead(feed))
	r.POST("/notifications/read-all", ApiMarkAllNotificationsRead(feed))
}
