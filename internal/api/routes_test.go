package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"ltctrack/internal/api/controllers"
	"ltctrack/internal/models/response_models"
	"ltctrack/internal/repositories"
	"ltctrack/internal/services"
	"ltctrack/internal/testutil"
	mem "ltctrack/pkg/memcache"
	"ltctrack/pkg/middleware"
	"ltctrack/pkg/utils"
)

type stubChain struct{}

func (stubChain) AddressTransactions(_ context.Context, address string) (*response_models.AddressTransactionsResponse, error) {
	return &response_models.AddressTransactionsResponse{Address: address}, nil
}

type stubPrices struct{}

func (stubPrices) ClosePrice(context.Context, utils.Day) (*float64, error) {
	p := 100.0
	return &p, nil
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log := zap.NewNop()

	users := repositories.NewUserRepository(db)
	accounts := repositories.NewAccountRepository(db)
	dailyStats := repositories.NewDailyStatRepository(db)
	guard := services.NewOwnershipGuard(accounts, dailyStats)

	sessions := services.NewSessionService(repositories.NewSessionRepository(db), log)
	auth := services.NewAuthService(users, sessions, services.NewBcryptHasher(), log)
	accountSvc := services.NewAccountService(accounts, guard, stubChain{}, log)
	dailyStatSvc := services.NewDailyStatService(dailyStats, guard, log)
	prices := services.NewPriceService(stubPrices{}, mem.NewPriceCache(), 0, log)
	statsSvc := services.NewStatsService(accounts, dailyStats, prices, log)

	authn := middleware.NewAuthenticator(auth, false, log)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware(), authn.RestoreIdentity())
	RegisterRoutes(r, Handlers{
		Authenticator: authn,
		Auth:          controllers.NewAuthController(auth, authn),
		Accounts:      controllers.NewAccountController(accountSvc, dailyStatSvc),
		DailyStats:    controllers.NewDailyStatController(dailyStatSvc),
		Stats:         controllers.NewStatsController(statsSvc),
		Pages:         controllers.NewPageController(accountSvc),
		Health:        controllers.NewHealthController(db),
	})
	return r
}

type client struct {
	t      *testing.T
	r      http.Handler
	ua     string
	cookie *http.Cookie
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.ua)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			if ck.MaxAge < 0 {
				c.cookie = nil
			} else {
				c.cookie = ck
			}
		}
	}
	return w
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func signUpAndLogin(t *testing.T, r http.Handler, email string) *client {
	t.Helper()
	c := &client{t: t, r: r, ua: "browser/" + email}

	w := c.do(http.MethodPost, "/api/register", map[string]string{
		"display_name": email, "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/login", map[string]string{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, c.cookie)
	return c
}

func TestRoutes_SessionLifecycle(t *testing.T) {
	r := newTestServer(t)
	alice := signUpAndLogin(t, r, "alice@example.com")

	var me response_models.UserResponse
	w := alice.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &me)
	assert.Equal(t, "alice@example.com", me.Email)

	// replayed cookie from another client
	thief := &client{t: t, r: r, ua: "other-agent", cookie: alice.cookie}
	w = thief.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the legitimate client is unaffected
	w = alice.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = alice.do(http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, alice.cookie)

	w = alice.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_WrongPassword(t *testing.T) {
	r := newTestServer(t)
	signUpAndLogin(t, r, "alice@example.com")

	c := &client{t: t, r: r, ua: "x"}
	w := c.do(http.MethodPost, "/login", map[string]string{"email": "alice@example.com", "password": "nope123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, c.cookie)
}

func TestRoutes_PagesRedirect(t *testing.T) {
	r := newTestServer(t)

	anon := &client{t: t, r: r, ua: "x"}
	w := anon.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = anon.do(http.MethodGet, "/", nil)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	alice := signUpAndLogin(t, r, "alice@example.com")
	w = alice.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var page response_models.PageView
	w = alice.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &page)
	assert.Equal(t, "dashboard", page.Page)
	require.NotNil(t, page.User)
	assert.Equal(t, "alice@example.com", page.User.Email)
}

func TestRoutes_OwnershipIsOpaque(t *testing.T) {
	r := newTestServer(t)
	alice := signUpAndLogin(t, r, "alice@example.com")
	bob := signUpAndLogin(t, r, "bob@example.com")

	var acc response_models.AccountResponse
	w := alice.do(http.MethodPost, "/api/accounts", map[string]string{"name": "main", "ltc_address": "Laddr1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &acc)

	foreign := bob.do(http.MethodGet, "/api/accounts/"+acc.ID.String(), nil)
	missing := bob.do(http.MethodGet, "/api/accounts/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, decode(t, missing, nil).Message, decode(t, foreign, nil).Message)

	w = bob.do(http.MethodDelete, "/api/accounts/"+acc.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = bob.do(http.MethodPut, "/api/daily-stats", map[string]interface{}{
		"account_id": acc.ID.String(), "date": "2025-01-01", "earned": 1, "pending": 0,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = alice.do(http.MethodGet, "/api/accounts/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_DailyStatsAndAggregate(t *testing.T) {
	r := newTestServer(t)
	alice := signUpAndLogin(t, r, "alice@example.com")

	var a, b response_models.AccountResponse
	decode(t, alice.do(http.MethodPost, "/api/accounts", map[string]string{"name": "A", "ltc_address": "LaddrA"}), &a)
	decode(t, alice.do(http.MethodPost, "/api/accounts", map[string]string{"name": "B", "ltc_address": "LaddrB"}), &b)

	upsert := func(accountID uuid.UUID, date string, earned, pending float64) *httptest.ResponseRecorder {
		return alice.do(http.MethodPut, "/api/daily-stats", map[string]interface{}{
			"account_id": accountID.String(), "date": date, "earned": earned, "pending": pending,
		})
	}

	require.Equal(t, http.StatusOK, upsert(a.ID, "2025-01-01", 1, 0.5).Code)
	require.Equal(t, http.StatusOK, upsert(a.ID, "2025-01-01", 1, 0.5).Code)
	require.Equal(t, http.StatusOK, upsert(b.ID, "2025-01-01", 2, 0).Code)
	require.Equal(t, http.StatusOK, upsert(b.ID, "2025-01-02", 0.5, 0).Code)

	w := alice.do(http.MethodPost, "/api/daily-stats", map[string]interface{}{
		"account_id": a.ID.String(), "date": "2025-01-01", "earned": 9, "pending": 0,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = upsert(a.ID, "January 1st", 1, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upsert(a.ID, "2025-01-03", -1, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var listed []response_models.DailyStatResponse
	decode(t, alice.do(http.MethodGet, "/api/accounts/"+a.ID.String()+"/daily-stats", nil), &listed)
	assert.Len(t, listed, 1)

	var stats response_models.AccountStatsResponse
	w = alice.do(http.MethodGet, "/api/account-stats?start_date=2025-01-01&end_date=2025-01-02&with_price=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &stats)
	assert.Equal(t, 2, stats.AccountsCount)
	assert.Equal(t, 2, stats.DaysCount)
	require.Len(t, stats.Data, 2)
	assert.Equal(t, "2025-01-01", stats.Data[0].Date.String())
	assert.Equal(t, 3.0, stats.Data[0].Earned)
	assert.Equal(t, 0.5, stats.Data[0].Pending)
	assert.Equal(t, 3.5, stats.Data[0].Total)
	require.NotNil(t, stats.Data[0].TotalUSDT)
	assert.Equal(t, 350.0, *stats.Data[0].TotalUSDT)
	assert.Equal(t, 0.5, stats.Data[1].Total)

	w = alice.do(http.MethodGet, "/api/account-stats?start_date=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_VerifyTwiceConflicts(t *testing.T) {
	r := newTestServer(t)
	alice := signUpAndLogin(t, r, "alice@example.com")

	var acc response_models.AccountResponse
	decode(t, alice.do(http.MethodPost, "/api/accounts", map[string]string{"name": "main", "ltc_address": "Laddr1"}), &acc)

	var first response_models.AccountResponse
	w := alice.do(http.MethodPatch, "/api/accounts/"+acc.ID.String()+"/verify", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &first)
	require.NotNil(t, first.VerifiedAt)

	w = alice.do(http.MethodPatch, "/api/accounts/"+acc.ID.String()+"/verify", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var after response_models.AccountResponse
	decode(t, alice.do(http.MethodGet, "/api/accounts/"+acc.ID.String(), nil), &after)
	require.NotNil(t, after.VerifiedAt)
	assert.True(t, first.VerifiedAt.Equal(*after.VerifiedAt))
}

func TestRoutes_Health(t *testing.T) {
	r := newTestServer(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
