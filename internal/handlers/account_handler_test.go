package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bankist-labs/bankist-api/internal/repositories"
	"github.com/bankist-labs/bankist-api/internal/services"
	"github.com/bankist-labs/bankist-api/pkg"
	middleware "github.com/bankist-labs/bankist-api/pkg/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	store := repositories.NewInMemoryStore(logger, repositories.DefaultSeed())
	sessions := services.NewSessionManager(logger, time.Minute)
	t.Cleanup(sessions.Stop)
	svc := services.NewBankService(logger, store, sessions)

	limiter := pkg.NewDistributedLimiter(nil, "global:loan_rate", 0, 1, time.Minute, logger)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.TraceID())
	NewAccountHandler(logger, svc).RegisterRoutes(api, middleware.RateLimit(limiter))
	NewBaseHandler(logger).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(pkg.HeaderSessionToken, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) pkg.APIResponse {
	t.Helper()
	var out pkg.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func loginAs(t *testing.T, r *gin.Engine, username, pin string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/login", "", map[string]string{
		"username": username,
		"pin":      pin,
	})
	require.Equal(t, http.StatusOK, w.Code)
	out := decodeResponse(t, w)
	token, ok := out.Data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestLogin_ReturnsTokenAndView(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/login", "", map[string]string{
		"username": "js",
		"pin":      "1111",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(pkg.HeaderTraceId))
	assert.NotEmpty(t, w.Header().Get(pkg.HeaderSessionToken))

	out := decodeResponse(t, w)
	assert.Equal(t, true, out.Data["ok"])
	account, ok := out.Data["account"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Welcome back, Jonas", account["welcome"])
	assert.InDelta(t, 3840, account["balance"].(float64), 1e-9)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	r := newTestRouter(t)

	wrongPin := doJSON(t, r, http.MethodPost, "/api/v1/login", "", map[string]string{
		"username": "js", "pin": "9999",
	})
	unknownUser := doJSON(t, r, http.MethodPost, "/api/v1/login", "", map[string]string{
		"username": "zz", "pin": "1111",
	})

	require.Equal(t, http.StatusOK, wrongPin.Code)
	require.Equal(t, http.StatusOK, unknownUser.Code)

	// Same status, same body shape, no cause in either.
	a := decodeResponse(t, wrongPin)
	b := decodeResponse(t, unknownUser)
	assert.Equal(t, false, a.Data["ok"])
	assert.Equal(t, a.Data, b.Data)
}

func TestTransfer_EndToEnd(t *testing.T) {
	r := newTestRouter(t)
	token := loginAs(t, r, "js", "1111")

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfer", token, map[string]string{
		"to": "jd", "amount": "500",
	})

	require.Equal(t, http.StatusOK, w.Code)
	out := decodeResponse(t, w)
	assert.Equal(t, true, out.Data["ok"])
	account := out.Data["account"].(map[string]interface{})
	assert.InDelta(t, 3340, account["balance"].(float64), 1e-9)
}

func TestTransfer_WithoutSessionIsSilentlyRejected(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfer", "", map[string]string{
		"to": "jd", "amount": "500",
	})

	require.Equal(t, http.StatusOK, w.Code)
	out := decodeResponse(t, w)
	assert.Equal(t, false, out.Data["ok"])
	assert.NotContains(t, out.Data, "account")
}

func TestRequestLoan_EndToEnd(t *testing.T) {
	r := newTestRouter(t)
	token := loginAs(t, r, "ss", "4444")

	w := doJSON(t, r, http.MethodPost, "/api/v1/loans", token, map[string]string{
		"amount": "2000",
	})

	require.Equal(t, http.StatusOK, w.Code)
	out := decodeResponse(t, w)
	assert.Equal(t, true, out.Data["ok"])
	account := out.Data["account"].(map[string]interface{})
	// 430+1000+700+50+90 plus the 2000 loan
	assert.InDelta(t, 4270, account["balance"].(float64), 1e-9)
}

func TestCloseAccount_EndToEnd(t *testing.T) {
	r := newTestRouter(t)
	token := loginAs(t, r, "ss", "4444")

	w := doJSON(t, r, http.MethodPost, "/api/v1/accounts/close", token, map[string]string{
		"username": "ss", "pin": "4444",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeResponse(t, w).Data["ok"])

	// The account is gone, so a fresh login fails silently.
	relogin := doJSON(t, r, http.MethodPost, "/api/v1/login", "", map[string]string{
		"username": "ss", "pin": "4444",
	})
	require.Equal(t, http.StatusOK, relogin.Code)
	assert.Equal(t, false, decodeResponse(t, relogin).Data["ok"])
}

func TestToggleSort_EndToEnd(t *testing.T) {
	r := newTestRouter(t)
	token := loginAs(t, r, "js", "1111")

	first := doJSON(t, r, http.MethodPost, "/api/v1/sort", token, nil)
	second := doJSON(t, r, http.MethodPost, "/api/v1/sort", token, nil)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	a := decodeResponse(t, first).Data["account"].(map[string]interface{})
	b := decodeResponse(t, second).Data["account"].(map[string]interface{})
	assert.Equal(t, true, a["sorted"])
	assert.Equal(t, a["movements"], b["movements"])
}

func TestMalformedJSONIsABadRequest(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var out pkg.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, pkg.ErrInvalidInputCode.Code, out.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
