package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/savoir/internal/model"
)

// RateLimiterConfig はレート制限の設定を保持する。
type RateLimiterConfig struct {
	LoginRate       rate.Limit    // ログイン試行のレート（req/sec）。IPアドレス単位
	LoginBurst      int           // ログイン試行のバーストサイズ
	GeneralRate     rate.Limit    // 管理API全般のレート（req/sec）。管理者単位
	GeneralBurst    int           // 管理API全般のバーストサイズ
	CleanupInterval time.Duration // 期限切れエントリのクリーンアップ間隔
}

// NewRateLimiterConfig はreq/min単位の設定値からRateLimiterConfigを生成する。
func NewRateLimiterConfig(loginPerMin, generalPerMin int) RateLimiterConfig {
	return RateLimiterConfig{
		LoginRate:       rate.Limit(float64(loginPerMin) / 60.0),
		LoginBurst:      loginPerMin,
		GeneralRate:     rate.Limit(float64(generalPerMin) / 60.0),
		GeneralBurst:    generalPerMin,
		CleanupInterval: 5 * time.Minute,
	}
}

// keyLimiter はキーごとのレートリミッターとアクセス時刻を保持する。
type keyLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter はキー単位のレート制限を管理する。
// ログイン試行（IPアドレス単位）と管理API全般（管理者単位）の2種類を提供する。
type RateLimiter struct {
	config RateLimiterConfig

	loginMu       sync.Mutex
	loginLimiters map[string]*keyLimiter

	generalMu       sync.Mutex
	generalLimiters map[string]*keyLimiter

	stopCh chan struct{}
}

// NewRateLimiter は新しいRateLimiterを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:          config,
		loginLimiters:   make(map[string]*keyLimiter),
		generalLimiters: make(map[string]*keyLimiter),
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// LoginMiddleware はログイン試行のレート制限ミドルウェアを返す。
// 認証前のエンドポイントのため、キーにはリモートIPアドレスを使用する。
func (rl *RateLimiter) LoginMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !rl.allow(&rl.loginMu, rl.loginLimiters, key, rl.config.LoginRate, rl.config.LoginBurst) {
				WriteErrorResponse(w, http.StatusTooManyRequests, model.NewRateLimitedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GeneralMiddleware は管理API全般のレート制限ミドルウェアを返す。
// リクエストコンテキストに認証済みアイデンティティが含まれている必要がある
// （認証ミドルウェアの後に配置）。
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if identity, err := IdentityFromContext(r.Context()); err == nil {
				key = identity.AdminID
			}
			if !rl.allow(&rl.generalMu, rl.generalLimiters, key, rl.config.GeneralRate, rl.config.GeneralBurst) {
				WriteErrorResponse(w, http.StatusTooManyRequests, model.NewRateLimitedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// allow は指定キーのリミッターでリクエストを判定する。
// リミッターが存在しない場合は作成する。
func (rl *RateLimiter) allow(mu *sync.Mutex, limiters map[string]*keyLimiter, key string, r rate.Limit, burst int) bool {
	mu.Lock()
	kl, ok := limiters[key]
	if !ok {
		kl = &keyLimiter{limiter: rate.NewLimiter(r, burst)}
		limiters[key] = kl
	}
	kl.lastAccess = time.Now()
	mu.Unlock()

	return kl.limiter.Allow()
}

// cleanupLoop は一定間隔で長時間アクセスのないリミッターを削除する。
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.config.CleanupInterval * 2)
			rl.cleanup(&rl.loginMu, rl.loginLimiters, cutoff)
			rl.cleanup(&rl.generalMu, rl.generalLimiters, cutoff)
		}
	}
}

// cleanup はcutoffより前にしかアクセスのないエントリを削除する。
func (rl *RateLimiter) cleanup(mu *sync.Mutex, limiters map[string]*keyLimiter, cutoff time.Time) {
	mu.Lock()
	defer mu.Unlock()
	for key, kl := range limiters {
		if kl.lastAccess.Before(cutoff) {
			delete(limiters, key)
		}
	}
}

// clientIP はリクエストのリモートIPアドレスを返す。
// リバースプロキシ背後での運用ではX-Forwarded-Forを優先する。
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
