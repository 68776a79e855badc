package activityhandlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fairway-collective/roundhouse/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type contextKey string

// actorKey carries the authenticated account id through the request context.
const actorKey contextKey = "actor"

// AccountFromContext returns the authenticated account id, if any.
func AccountFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey).(uuid.UUID)
	return id, ok
}

// WithAccount returns a context carrying the account id. Exposed for tests.
func WithAccount(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey, accountID)
}

// AuthMiddleware validates the bearer token and resolves the acting account.
// The token subject must be the account UUID issued by the identity provider.
func AuthMiddleware(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			accountID, err := uuid.Parse(claims.Subject)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), accountID)))
		})
	}
}

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle account entry is
	// eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type accountEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// AccountRateLimiter is a per-account rate limiter that prunes stale entries
// inline.
type AccountRateLimiter struct {
	accounts map[uuid.UUID]*accountEntry
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

// NewAccountRateLimiter creates a new AccountRateLimiter.
func NewAccountRateLimiter(r rate.Limit, b int) *AccountRateLimiter {
	return &AccountRateLimiter{
		accounts: make(map[uuid.UUID]*accountEntry),
		r:        r,
		b:        b,
	}
}

// GetLimiter returns a rate.Limiter for the given account, pruning stale
// entries when the map exceeds cleanupThreshold.
func (l *AccountRateLimiter) GetLimiter(accountID uuid.UUID) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.accounts) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for k, e := range l.accounts {
			if e.lastSeen.Before(cutoff) {
				delete(l.accounts, k)
			}
		}
	}

	e, exists := l.accounts[accountID]
	if !exists {
		e = &accountEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.accounts[accountID] = e
	}
	e.lastSeen = time.Now()

	return e.limiter
}

// RateLimitMiddleware returns a middleware that rate limits requests by the
// authenticated account. Runs after AuthMiddleware.
func RateLimitMiddleware(limiter *AccountRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, ok := AccountFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !limiter.GetLimiter(accountID).Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
