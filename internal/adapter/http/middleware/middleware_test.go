package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"collateral-ledger/internal/core/ports"
	"collateral-ledger/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runMiddleware(mw gin.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	mw(c)
	return w, c
}

// --- JWTAuth ---

func TestJWTAuth_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	mockToken := mocks.NewMockTokenService(ctrl)
	mockToken.EXPECT().Validate("good-token").Return(&ports.TokenClaims{
		OwnerID:  owner,
		Username: "alice",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	w, c := runMiddleware(JWTAuth(mockToken, zerolog.Nop()), req)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
	gotOwner, _ := c.Get(CtxOwnerID)
	assert.Equal(t, owner, gotOwner)
	gotUser, _ := c.Get(CtxUsername)
	assert.Equal(t, "alice", gotUser)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockToken := mocks.NewMockTokenService(ctrl)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	w, c := runMiddleware(JWTAuth(mockToken, zerolog.Nop()), req)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockToken := mocks.NewMockTokenService(ctrl)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	w, c := runMiddleware(JWTAuth(mockToken, zerolog.Nop()), req)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RejectedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockToken := mocks.NewMockTokenService(ctrl)
	mockToken.EXPECT().Validate("expired").Return(nil, errors.New("token expired"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired")

	w, c := runMiddleware(JWTAuth(mockToken, zerolog.Nop()), req)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- RequestID ---

func TestRequestID_Generated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	w, c := runMiddleware(RequestID(), req)

	id := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, id)
	ctxID, _ := c.Get(CtxRequestID)
	assert.Equal(t, id, ctxID)
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")

	w, _ := runMiddleware(RequestID(), req)

	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}

// --- MaxBodySize ---

func TestMaxBodySize_OversizedBodyRejected(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodySize(16))
	r.POST("/", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"padding":"`+strings.Repeat("x", 64)+`"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

// --- RateLimiter ---

func TestRateLimiter_Allowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockRateLimitStore(ctrl)
	mockStore.EXPECT().Allow(gomock.Any(), gomock.Any(), 10, time.Minute).Return(true, nil)

	rule := RateLimitRule{Limit: 10, Window: time.Minute}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, c := runMiddleware(RateLimiter(mockStore, "ledger", rule, zerolog.Nop()), req)

	assert.False(t, c.IsAborted())
}

func TestRateLimiter_Blocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockRateLimitStore(ctrl)
	mockStore.EXPECT().Allow(gomock.Any(), gomock.Any(), 10, time.Minute).Return(false, nil)

	rule := RateLimitRule{Limit: 10, Window: time.Minute}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	w, c := runMiddleware(RateLimiter(mockStore, "ledger", rule, zerolog.Nop()), req)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiter_StoreFailureAllows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockRateLimitStore(ctrl)
	mockStore.EXPECT().Allow(gomock.Any(), gomock.Any(), 10, time.Minute).Return(false, errors.New("redis down"))

	rule := RateLimitRule{Limit: 10, Window: time.Minute}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, c := runMiddleware(RateLimiter(mockStore, "ledger", rule, zerolog.Nop()), req)

	assert.False(t, c.IsAborted())
}

func TestRateLimiter_KeyedByOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	mockStore := mocks.NewMockRateLimitStore(ctrl)
	mockStore.EXPECT().Allow(gomock.Any(), owner.String()+":payments", 100, time.Minute).Return(true, nil)

	rule := RateLimitRule{Limit: 100, Window: time.Minute}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set(CtxOwnerID, owner)

	RateLimiter(mockStore, "payments", rule, zerolog.Nop())(c)

	assert.False(t, c.IsAborted())
}
