package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

const secret = "mw-secret"

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func whoami(c echo.Context) error { return c.String(http.StatusOK, ProfileID(c)) }

func TestSessionAuth(t *testing.T) {
	e := echo.New()
	e.GET("/me", whoami, SessionAuth(secret))

	tok, err := utils.NewProfileToken(secret, time.Hour)
	require.NoError(t, err)
	rec := serve(e, http.MethodGet, "/me", tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tok.ProfileID, rec.Body.String())

	other, err := utils.NewProfileToken("someone-else", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/me", other.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/me", "").Code)
}

func TestTokenBucket(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		KeyStrategy:    "profile_route",
		Prefix:         "rl",
	}
	e := echo.New()
	e.GET("/me", whoami, SessionAuth(secret), NewTokenBucket(cfg, rdb))

	alice, err := utils.NewProfileToken(secret, time.Hour)
	require.NoError(t, err)
	bob, err := utils.NewProfileToken(secret, time.Hour)
	require.NoError(t, err)

	rec := serve(e, http.MethodGet, "/me", alice.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/me", alice.Token).Code)

	rec = serve(e, http.MethodGet, "/me", alice.Token)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/me", bob.Token).Code, "buckets are per profile")
}

func TestTokenBucket_DisabledPassesThrough(t *testing.T) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
		NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/ping", "").Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/booking/confirm", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/booking/confirm")
	c.Set(ProfileKey, "p-1")

	cases := map[string]string{
		"ip":               "rl:ip:10.0.0.9",
		"profile":          "rl:profile:p-1",
		"ip_route":         "rl:ip:10.0.0.9:route:POST /v1/booking/confirm",
		"ip_profile_route": "rl:ip:10.0.0.9:profile:p-1:route:POST /v1/booking/confirm",
		"":                 "rl:profile:p-1:route:POST /v1/booking/confirm",
	}
	for strategy, want := range cases {
		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		assert.Equal(t, want, got, strategy)
	}
}

func TestRedisCache(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 10,
	}
	calls := 0
	e := echo.New()
	e.GET("/data", func(c echo.Context) error {
		calls++
		if c.QueryParam("fail") != "" {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "boom"})
		}
		return c.JSON(http.StatusOK, echo.Map{"city": c.QueryParam("city")})
	}, NewRedisCache(cfg, rdb))

	rec := serve(e, http.MethodGet, "/data?city=pune", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = serve(e, http.MethodGet, "/data?city=pune", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"city":"pune"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.Equal(t, 1, calls)

	serve(e, http.MethodGet, "/data?city=delhi", "")
	assert.Equal(t, 2, calls, "query string is part of the key")

	serve(e, http.MethodGet, "/data?fail=1", "")
	rec = serve(e, http.MethodGet, "/data?fail=1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 4, calls, "errors are not cached")
}
