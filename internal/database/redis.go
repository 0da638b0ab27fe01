package database

import (
	"dormhub/pkg/config"
	"dormhub/pkg/revocation"
	"sync"
)

var (
	revokerInstance *revocation.RedisRevoker
	revokerOnce     sync.Once
)

// GetRevoker 获取令牌吊销存储的单例实例
func GetRevoker() *revocation.RedisRevoker {
	revokerOnce.Do(func() {
		cfg := config.GetConfig()
		revokerInstance = revocation.NewRedisRevoker(&revocation.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	})
	return revokerInstance
}

// CloseRevoker 关闭Redis连接
func CloseRevoker() error {
	if revokerInstance != nil {
		return revokerInstance.Close()
	}
	return nil
}
