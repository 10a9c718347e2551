package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"billsplit-service/internal/model"
	"billsplit-service/internal/service"
	"billsplit-service/pkg/jwtutil"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Merchant{},
		&model.BillSession{},
		&model.Participant{},
		&model.ContractState{},
		&model.Account{},
	))

	svc := service.New(db, service.Config{
		OwnerAddress:    "platform-owner",
		EscrowAddress:   "billsplit-escrow",
		PlatformFeeRate: 1,
	}, zap.NewNop())
	require.NoError(t, svc.EnsureContractState())

	return New(svc)
}

// newTestContext builds an echo context with the auth middleware's outputs
// already in place.
func newTestContext(t *testing.T, method, path, body, caller string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("logger", zap.NewNop())
	if caller != "" {
		c.Set("user", &jwtutil.WalletClaims{Address: caller})
	}
	return c, rec
}

func TestRegisterMerchantHandler(t *testing.T) {
	h := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/merchants", `{"name":"Test Restaurant"}`, "wallet-1")
	require.NoError(t, h.RegisterMerchant(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Test Restaurant"`)

	// Duplicate registration maps to a conflict.
	c, rec = newTestContext(t, http.MethodPost, "/merchants", `{"name":"Another"}`, "wallet-1")
	require.NoError(t, h.RegisterMerchant(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterMerchantHandlerUnauthenticated(t *testing.T) {
	h := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/merchants", `{"name":"Test Restaurant"}`, "")
	require.NoError(t, h.RegisterMerchant(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSessionHandlerNotFound(t *testing.T) {
	h := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodGet, "/", "", "")
	c.SetPath("/sessions/:id")
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJoinSessionHandlerInsufficientFunds(t *testing.T) {
	h := newTestHandler(t)

	c, _ := newTestContext(t, http.MethodPost, "/merchants", `{"name":"Test Restaurant"}`, "merchant-1")
	require.NoError(t, h.RegisterMerchant(c))

	c, rec := newTestContext(t, http.MethodPost, "/sessions",
		`{"merchant_address":"merchant-1","total_bill_amount":1000000,"min_contribution":100000,"tip_rate":15}`,
		"merchant-1")
	require.NoError(t, h.CreateSession(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// No funds seeded for the participant.
	c, rec = newTestContext(t, http.MethodPost, "/", `{"amount":100000}`, "wallet-3")
	c.SetPath("/sessions/:id/join")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.JoinSession(c))
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestContractStatusHandler(t *testing.T) {
	h := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodGet, "/status", "", "")
	require.NoError(t, h.ContractStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"next_session_id":1`)
	assert.Contains(t, rec.Body.String(), `"platform_fee_rate":1`)
}
