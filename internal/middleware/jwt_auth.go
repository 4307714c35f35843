package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"sellhub_uz_202608/internal/repository"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey      string        // 签名密钥
	AccessTokenTTL time.Duration // Access Token 有效期
	Issuer         string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey:      "sellhub-secret-key-change-in-production",
		AccessTokenTTL: 24 * time.Hour,
		Issuer:         "sellhub-uz",
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// ==================== Claims 定义 ====================

// PartnerClaims 合作伙伴声明
type PartnerClaims struct {
	PartnerID int64  `json:"partner_id"`
	Tier      string `json:"tier"`
	jwt.RegisteredClaims
}

// ==================== Token 生成 ====================

// GeneratePartnerToken 生成合作伙伴 Access Token
func GeneratePartnerToken(partnerID int64, tier string) (string, error) {
	now := time.Now()
	claims := &PartnerClaims{
		PartnerID: partnerID,
		Tier:      tier,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   "access",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ==================== Token 解析 ====================

// ParseToken 解析 Token
func ParseToken(tokenString string) (*PartnerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PartnerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*PartnerClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyPartnerID = "partner_id"
	ContextKeyTier      = "partner_tier"
)

// PartnerAuth 合作伙伴认证中间件
// 支持两种方式：Bearer JWT 或 X-API-Token (数据库中的长期令牌)
func PartnerAuth(partnerRepo repository.PartnerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 优先 API Token
		if apiToken := c.GetHeader("X-API-Token"); apiToken != "" {
			partner, err := partnerRepo.GetByAPIToken(c.Request.Context(), apiToken)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"code":    401,
					"message": "API Token 无效",
				})
				c.Abort()
				return
			}
			c.Set(ContextKeyPartnerID, partner.ID)
			c.Set(ContextKeyTier, string(partner.Tier))
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未提供认证信息",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "认证格式错误，应为 Bearer {token}",
			})
			c.Abort()
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Token 无效或已过期",
			})
			c.Abort()
			return
		}

		if claims.Subject != "access" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Token 类型错误",
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyPartnerID, claims.PartnerID)
		c.Set(ContextKeyTier, claims.Tier)

		c.Next()
	}
}

// GetPartnerID 从 Context 获取合作伙伴 ID
func GetPartnerID(c *gin.Context) int64 {
	if v, exists := c.Get(ContextKeyPartnerID); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetPartnerTier 从 Context 获取合作伙伴等级
func GetPartnerTier(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyTier); exists {
		if tier, ok := v.(string); ok {
			return tier
		}
	}
	return ""
}
