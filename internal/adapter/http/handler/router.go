package handler

import (
	"net/http"

	"escrow-relay/internal/adapter/http/middleware"
	redisStore "escrow-relay/internal/adapter/storage/redis"
	"escrow-relay/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Verifier       ports.EscrowVerifier
	Relayer        ports.Relayer
	SecretStore    ports.SecretStore
	SigSvc         ports.SignatureService
	NonceStore     ports.NonceStore
	HMACSecret     string                     // empty = service auth disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Metrics        http.Handler // nil = /metrics not served
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	serviceAuth := middleware.HMACAuth(deps.HMACSecret, deps.SigSvc, deps.NonceStore, deps.Logger)
	v1 := r.Group("/api/v1", serviceAuth)

	escrowHandler := NewEscrowHandler(deps.Verifier)
	v1.POST("/escrow/verify", rl("verify"), escrowHandler.Verify)

	claimHandler := NewClaimHandler(deps.Relayer)
	claims := v1.Group("/claims", rl("claims"))
	{
		claims.POST("/wallet", claimHandler.ClaimToWallet)
		claims.POST("/treasury", claimHandler.ClaimToPayoutTreasury)
	}

	accountHandler := NewLinkedAccountHandler(deps.SecretStore)
	accounts := v1.Group("/linked-accounts/:owner", rl("linked_accounts"))
	{
		accounts.GET("", accountHandler.List)
		accounts.GET("/count", accountHandler.Count)
		accounts.DELETE("", accountHandler.DeleteAll)
		accounts.PUT("/items/:item", accountHandler.Upsert)
		accounts.DELETE("/items/:item", accountHandler.Delete)
	}

	return r
}
