package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Revoker 令牌吊销存储
type Revoker interface {
	// Revoke 吊销令牌，ttl 到期后记录自动清除
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// IsRevoked 判断令牌是否已被吊销
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// RedisRevoker 基于Redis的令牌吊销实现
type RedisRevoker struct {
	client *redis.Client
	prefix string
}

// NewRedisRevoker 创建Redis吊销存储
func NewRedisRevoker(config *Config) *RedisRevoker {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "dormhub:revoked"
	}

	return &RedisRevoker{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (r *RedisRevoker) Close() error {
	return r.client.Close()
}

// Ping 测试Redis连接
func (r *RedisRevoker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Revoke 写入吊销记录
func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// 已过期的令牌无需记录
		return nil
	}
	if err := r.client.Set(ctx, r.key(tokenID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked 查询吊销记录
func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}

func (r *RedisRevoker) key(tokenID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, tokenID)
}
