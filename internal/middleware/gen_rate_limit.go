package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== GenRateLimiter 生成限流器 ====================

// GenRateLimiter 卡片生成限流器
// 防止合作伙伴频繁触发AI生成导致 Gemini API 限流
type GenRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalGenLimiter = &GenRateLimiter{}

// GetGenLimiter 获取全局限流器
func GetGenLimiter() *GenRateLimiter {
	return globalGenLimiter
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时更新最后执行时间
// key: 限流键，如 "partner:123:card_gen"
func (r *GenRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key 的限流
func (r *GenRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// PartnerGenKey 生成合作伙伴级限流 Key
func PartnerGenKey(partnerID int64) string {
	return fmt.Sprintf("partner:%d:card_gen", partnerID)
}

// ==================== Gin 中间件 ====================

// RateLimitCardGen 卡片生成限流中间件
// interval 内同一合作伙伴只允许一次完整生成
func RateLimitCardGen(interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := GetPartnerID(c)
		if partnerID == 0 {
			c.Next()
			return
		}

		result := globalGenLimiter.Check(PartnerGenKey(partnerID), interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": fmt.Sprintf("生成过于频繁，请 %.0f 秒后重试", result.RetryAfter.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
