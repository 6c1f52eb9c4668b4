package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"escrow-relay/internal/core/ports/mocks"
	"escrow-relay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "relay-service-secret"

func authRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.POST("/api/v1/claims/wallet", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func signedRequest(body, nonce string, ts int64, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/wallet", bytes.NewBufferString(body))
	req.Header.Set(HeaderSignature, signature)
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderNonce, nonce)
	return req
}

func TestHMACAuth_MissingHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	sigSvc := mocks.NewMockSignatureService(ctrl)
	nonceStore := mocks.NewMockNonceStore(ctrl)

	router := authRouter(HMACAuth(testSecret, sigSvc, nonceStore, zerolog.Nop()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/wallet", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_001")
}

func TestHMACAuth_TimestampOutsideWindow(t *testing.T) {
	tests := []struct {
		name string
		ts   string
	}{
		{"too old", strconv.FormatInt(time.Now().Add(-2*time.Minute).Unix(), 10)},
		{"in the future", strconv.FormatInt(time.Now().Add(2*time.Minute).Unix(), 10)},
		{"not a number", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sigSvc := mocks.NewMockSignatureService(ctrl)
			nonceStore := mocks.NewMockNonceStore(ctrl)
			router := authRouter(HMACAuth(testSecret, sigSvc, nonceStore, zerolog.Nop()))

			req := signedRequest("{}", "n-1", 0, "sig")
			req.Header.Set(HeaderTimestamp, tt.ts)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "SEC_002")
		})
	}
}

func TestHMACAuth_BadSignatureDoesNotBurnNonce(t *testing.T) {
	ctrl := gomock.NewController(t)
	sigSvc := mocks.NewMockSignatureService(ctrl)
	nonceStore := mocks.NewMockNonceStore(ctrl)

	now := time.Now().Unix()
	sigSvc.EXPECT().BuildCanonicalString("POST", "/api/v1/claims/wallet", now, "n-1", "{}").Return("canonical")
	sigSvc.EXPECT().Verify(testSecret, "canonical", "forged").Return(false)

	router := authRouter(HMACAuth(testSecret, sigSvc, nonceStore, zerolog.Nop()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest("{}", "n-1", now, "forged"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHMACAuth_ReplayedNonce(t *testing.T) {
	ctrl := gomock.NewController(t)
	sigSvc := mocks.NewMockSignatureService(ctrl)
	nonceStore := mocks.NewMockNonceStore(ctrl)

	sigSvc.EXPECT().BuildCanonicalString(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("canonical")
	sigSvc.EXPECT().Verify(testSecret, "canonical", "sig").Return(true)
	nonceStore.EXPECT().CheckAndSet(gomock.Any(), nonceScope, "n-1", nonceTTL).Return(false, nil)

	router := authRouter(HMACAuth(testSecret, sigSvc, nonceStore, zerolog.Nop()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest("{}", "n-1", time.Now().Unix(), "sig"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_003")
}

func TestHMACAuth_NonceStoreErrorAllows(t *testing.T) {
	ctrl := gomock.NewController(t)
	sigSvc := mocks.NewMockSignatureService(ctrl)
	nonceStore := mocks.NewMockNonceStore(ctrl)

	sigSvc.EXPECT().BuildCanonicalString(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("canonical")
	sigSvc.EXPECT().Verify(testSecret, "canonical", "sig").Return(true)
	nonceStore.EXPECT().CheckAndSet(gomock.Any(), nonceScope, "n-1", nonceTTL).Return(false, errors.New("redis down"))

	router := authRouter(HMACAuth(testSecret, sigSvc, nonceStore, zerolog.Nop()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest("{}", "n-1", time.Now().Unix(), "sig"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHMACAuth_SuccessWithRealSignatureKeepsBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	nonceStore := mocks.NewMockNonceStore(ctrl)
	nonceStore.EXPECT().CheckAndSet(gomock.Any(), nonceScope, "n-ok", nonceTTL).Return(true, nil)

	sigSvc := service.NewHMACSignatureService()
	body := `{"transfer_id":"0x01","chain_id":8453}`
	now := time.Now().Unix()
	signature := sigSvc.Sign(testSecret, sigSvc.BuildCanonicalString("POST", "/api/v1/claims/wallet", now, "n-ok", body))

	var seenBody string
	var authenticated bool
	router := gin.New()
	router.POST("/api/v1/claims/wallet", HMACAuth(testSecret, sigSvc, nonceStore, zerolog.Nop()), func(c *gin.Context) {
		raw, _ := c.GetRawData()
		seenBody = string(raw)
		authenticated = c.GetBool(CtxAuthenticated)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(body, "n-ok", now, signature))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, seenBody)
	assert.True(t, authenticated)
}

func TestHMACAuth_EmptySecretDisablesCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	sigSvc := mocks.NewMockSignatureService(ctrl)
	nonceStore := mocks.NewMockNonceStore(ctrl)

	router := authRouter(HMACAuth("", sigSvc, nonceStore, zerolog.Nop()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/claims/wallet", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxRequestID))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())
	assert.Contains(t, buf.String(), generated)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "caller-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
}

func TestRecovery_CatchesPanic(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}

func TestMaxBodySize_RejectsOversizedBody(t *testing.T) {
	router := gin.New()
	router.Use(MaxBodySize(16))
	router.POST("/echo", func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("a", 17))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)
}
