package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/waoafrica/backoffice/internal/app/service/payment"
	"github.com/waoafrica/backoffice/internal/app/service/ticket"
	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/response"
	"github.com/waoafrica/backoffice/pkg/types"
)

type ClaimItem struct {
	ID                  string            `json:"id"`
	EventID             string            `json:"event_id"`
	FullName            string            `json:"full_name"`
	Email               string            `json:"email"`
	Phone               string            `json:"phone"`
	TicketType          types.TicketType  `json:"ticket_type"`
	Amount              int64             `json:"amount"`
	MpesaCode           string            `json:"mpesa_code"`
	Status              types.ClaimStatus `json:"status"`
	ConfirmationMessage *string           `json:"confirmation_message"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

func toClaimItem(m *models.PaymentClaim) *ClaimItem {
	return &ClaimItem{
		ID:                  m.ID,
		EventID:             m.EventID,
		FullName:            m.FullName,
		Email:               m.Email,
		Phone:               m.Phone,
		TicketType:          m.TicketType,
		Amount:              m.Amount,
		MpesaCode:           m.MpesaCode,
		Status:              m.Status,
		ConfirmationMessage: m.ConfirmationMessage,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

type ListClaimsResponse struct {
	Items []*ClaimItem `json:"items"`
	Total int64        `json:"total"`
}

// @Summary      List Payment Claims (Admin)
// @Description  Returns payment claims newest first, optionally filtered by status and event.
// @Tags         Admin
// @Produce      json
// @Param        status    query  string  false  "claim status"
// @Param        event_id  query  string  false  "event identifier"
// @Param        limit     query  int     false  "page size"
// @Param        offset    query  int     false  "page offset"
// @Success      200  {object}  handlers.ListClaimsResponse
// @Router       /api/v1/admin/payments [get]
func ApiListClaims(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filters []*types.CommonFilter
		if status := c.Query("status"); status != "" {
			filters = append(filters, &types.CommonFilter{Field: "status", Operator: types.CommonFilterOperatorEq, Values: []any{status}})
		}
		if eventID := c.Query("event_id"); eventID != "" {
			filters = append(filters, &types.CommonFilter{Field: "event_id", Operator: types.CommonFilterOperatorEq, Values: []any{eventID}})
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))

		res, err := svc.Store().ListClaims(c.Request.Context(), &payment.ListClaimsRequest{
			Filters: filters,
			From:    offset,
			Size:    limit,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&ListClaimsResponse{
			Items: lo.Map(res.Items, func(m *models.PaymentClaim, _ int) *ClaimItem { return toClaimItem(m) }),
			Total: res.Total,
		}))
	}
}

// @Summary      Get Payment Claim (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id  path  string  true  "claim id"
// @Success      200  {object}  handlers.ClaimItem
// @Router       /api/v1/admin/payments/{id} [get]
func ApiGetClaim(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, err := svc.Store().GetClaim(c.Request.Context(), c.Param("id"))
		if err != nil {
			writePaymentError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(toClaimItem(claim)))
	}
}

type ReviewClaimRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// @Summary      Review Payment Claim (Admin)
// @Description  Applies a verdict to a claim. Approving issues a ticket exactly once and emails the payer.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "claim id"
// @Param        request  body  handlers.ReviewClaimRequest  true  "target status and optional reason"
// @Success      200  {object}  payment.ReviewResult
// @Router       /api/v1/admin/payments/{id} [put]
func ApiReviewClaim(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReviewClaimRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.ReviewPayment(c.Request.Context(), &payment.ReviewRequest{
			ClaimID: c.Param("id"),
			Status:  req.Status,
			Reason:  req.Reason,
		})
		if err != nil {
			writePaymentError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Submit Payment Claim
// @Description  Records an M-Pesa payment claim for later admin verification.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request  body  payment.InsertClaimRequest  true  "claim details"
// @Success      200  {object}  handlers.ClaimItem
// @Router       /api/v1/payments [post]
func ApiSubmitClaim(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.InsertClaimRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		claim, err := svc.Store().InsertClaim(c.Request.Context(), &req)
		if err != nil {
			if errors.Is(err, payment.ErrDuplicateMpesaCode) {
				c.JSON(http.StatusConflict, response.ErrorT[any](response.APIResponseCodeConflict, err.Error()))
				return
			}
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toClaimItem(claim)))
	}
}

func writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payment.ErrClaimNotFound):
		c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
	case errors.Is(err, payment.ErrInvalidStatus), errors.Is(err, payment.ErrMissingReason):
		c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
	case errors.Is(err, payment.ErrDuplicateMpesaCode):
		c.JSON(http.StatusConflict, response.ErrorT[any](response.APIResponseCodeConflict, err.Error()))
	case errors.Is(err, ticket.ErrAllocationExhausted):
		// The claim is paid but unticketed; the message keeps that visible.
		c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
	}
}

func RegisterAdminPaymentRoutes(r gin.IRouter, svc *payment.Service) {
	r.GET("/payments", ApiListClaims(svc))
	r.GET("/payments/:id", ApiGetClaim(svc))
	r.PUT("/payments/:id", ApiReviewClaim(svc))
}

func RegisterPublicPaymentRoutes(r gin.IRouter, svc *payment.Service) {
	r.POST("/payments", ApiSubmitClaim(svc))
}
