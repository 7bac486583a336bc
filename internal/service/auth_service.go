package service

import (
	"context"
	"errors"
	"time"

	"noticeboard/config"
	"noticeboard/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/apimachinery/pkg/util/rand"
)

// ErrPasswordIncorrect 管理员密码错误
var ErrPasswordIncorrect = errors.New("密码错误")

// AuthService 管理员认证服务
type AuthService struct {
	cfg         config.AdminConfig
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg config.AdminConfig, redisClient *redis.Client, logger *logger.Logger) *AuthService {
	return &AuthService{
		cfg:         cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Login 校验管理员密码，成功时签发一个带有效期的随机Token
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		return "", ErrPasswordIncorrect
	}

	token := rand.String(32)
	ttl := time.Duration(s.cfg.TokenTTLHours) * time.Hour
	if err := s.redisClient.Set(ctx, tokenKey(token), "1", ttl).Err(); err != nil {
		s.logger.Error("保存管理员Token失败", "error", err)
		return "", err
	}
	return token, nil
}

// VerifyToken 校验Token是否有效
func (s *AuthService) VerifyToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := s.redisClient.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// tokenKey 管理员Token在Redis中的键
func tokenKey(token string) string {
	return "admin_token:" + token
}
