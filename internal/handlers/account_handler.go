package handlers

import (
	"net/http"

	"github.com/bankist-labs/bankist-api/internal/services"
	"github.com/bankist-labs/bankist-api/internal/views"
	"github.com/bankist-labs/bankist-api/pkg"
	"github.com/bankist-labs/bankist-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandler exposes the five user actions plus a read-only render.
// Business failures answer exactly like successes minus the data: a 200
// with ok=false and no cause. Only transport problems (bad JSON, missing
// trace ID) produce error statuses.
type AccountHandler struct {
	logger  *zap.Logger
	service services.BankService
}

func NewAccountHandler(logger *zap.Logger, svc services.BankService) *AccountHandler {
	return &AccountHandler{logger: logger, service: svc}
}

// RegisterRoutes registers account routes on the provided Gin group. The
// loans route carries an extra rate-limit middleware, applied in app wiring.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup, loanLimiter gin.HandlerFunc) {
	r.POST("/login", h.Login)
	r.POST("/transfer", h.Transfer)
	r.POST("/loans", loanLimiter, h.RequestLoan)
	r.POST("/accounts/close", h.CloseAccount)
	r.POST("/sort", h.ToggleSort)
	r.GET("/account", h.GetAccount)
}

func (h *AccountHandler) Login(c *gin.Context) {
	traceID, ok := h.traceID(c)
	if !ok {
		return
	}

	var req views.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	outcome, result := h.service.Login(c.Request.Context(), traceID, req.Username, req.PIN)
	if !outcome.OK() {
		h.silentFailure(c, traceID)
		return
	}

	c.Header(pkg.HeaderSessionToken, result.Token)
	c.JSON(http.StatusOK, pkg.APIResponse{
		TraceID: traceID,
		Data: map[string]interface{}{
			"ok":      true,
			"token":   result.Token,
			"account": result.View,
		},
	})
}

func (h *AccountHandler) Transfer(c *gin.Context) {
	traceID, ok := h.traceID(c)
	if !ok {
		return
	}

	var req views.TransferRequest
	if !h.bind(c, &req) {
		return
	}

	outcome, view := h.service.Transfer(c.Request.Context(), traceID, h.token(c), req.To, req.Amount)
	h.respond(c, traceID, outcome, view)
}

func (h *AccountHandler) RequestLoan(c *gin.Context) {
	traceID, ok := h.traceID(c)
	if !ok {
		return
	}

	var req views.LoanRequest
	if !h.bind(c, &req) {
		return
	}

	outcome, view := h.service.RequestLoan(c.Request.Context(), traceID, h.token(c), req.Amount)
	h.respond(c, traceID, outcome, view)
}

func (h *AccountHandler) CloseAccount(c *gin.Context) {
	traceID, ok := h.traceID(c)
	if !ok {
		return
	}

	var req views.CloseAccountRequest
	if !h.bind(c, &req) {
		return
	}

	outcome := h.service.CloseAccount(c.Request.Context(), traceID, h.token(c), req.Username, req.PIN)
	if !outcome.OK() {
		h.silentFailure(c, traceID)
		return
	}
	c.JSON(http.StatusOK, pkg.APIResponse{
		TraceID: traceID,
		Data: map[string]interface{}{
			"ok": true,
		},
	})
}

func (h *AccountHandler) ToggleSort(c *gin.Context) {
	traceID, ok := h.traceID(c)
	if !ok {
		return
	}
	outcome, view := h.service.ToggleSort(c.Request.Context(), traceID, h.token(c))
	h.respond(c, traceID, outcome, view)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	traceID, ok := h.traceID(c)
	if !ok {
		return
	}
	outcome, view := h.service.Render(c.Request.Context(), traceID, h.token(c))
	h.respond(c, traceID, outcome, view)
}

func (h *AccountHandler) respond(c *gin.Context, traceID string, outcome services.Outcome, view views.AccountView) {
	if !outcome.OK() {
		h.silentFailure(c, traceID)
		return
	}
	c.JSON(http.StatusOK, pkg.APIResponse{
		TraceID: traceID,
		Data: map[string]interface{}{
			"ok":      true,
			"account": view,
		},
	})
}

// silentFailure is the uniform answer to every failed precondition. The
// body never says which check failed; the cause only reaches the logs.
func (h *AccountHandler) silentFailure(c *gin.Context, traceID string) {
	c.JSON(http.StatusOK, pkg.APIResponse{
		TraceID: traceID,
		Data: map[string]interface{}{
			"ok": false,
		},
	})
}

func (h *AccountHandler) token(c *gin.Context) string {
	return c.Request.Header.Get(pkg.HeaderSessionToken)
}

func (h *AccountHandler) traceID(c *gin.Context) (string, bool) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return "", false
	}
	return traceID, true
}

func (h *AccountHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}
