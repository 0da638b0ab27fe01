package session

import (
	"context"
	"fmt"
	"sync"

	"dormhub/internal/client"
	"dormhub/pkg/logger"
)

// TokenKey 本地存储中token的键
const TokenKey = "token"

// Gateway 认证网关
type Gateway interface {
	Login(ctx context.Context, email, password string) (*client.AuthResult, error)
	Register(ctx context.Context, reg client.Registration) (*client.AuthResult, error)
	Logout(ctx context.Context, sess client.Session) error
}

// Store 会话存储：每台设备最多一个token，不做本地过期判断
type Store struct {
	kv      KV
	gateway Gateway

	mu    sync.RWMutex
	token string
}

// New 创建会话存储并读取已持久化的token
func New(kv KV, gateway Gateway) (*Store, error) {
	token, _, err := kv.Get(TokenKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Store{kv: kv, gateway: gateway, token: token}, nil
}

// Acquire 登录并持久化token；失败时不写入任何内容
func (s *Store) Acquire(ctx context.Context, email, password string) (*client.AuthResult, error) {
	res, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.put(res.Token); err != nil {
		return nil, err
	}
	return res, nil
}

// AcquireRegistration 注册成功后同样持久化token
func (s *Store) AcquireRegistration(ctx context.Context, reg client.Registration) (*client.AuthResult, error) {
	res, err := s.gateway.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if err := s.put(res.Token); err != nil {
		return nil, err
	}
	return res, nil
}

// Read 非阻塞读取内存中的token
func (s *Store) Read() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Session 当前会话上下文
func (s *Store) Session() client.Session {
	token, _ := s.Read()
	return client.Session{Token: token}
}

// Clear 删除持久化的token
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(TokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.token = ""
	return nil
}

// Logout 通知服务端吊销token；无论结果如何都清理本地会话
func (s *Store) Logout(ctx context.Context) error {
	sess := s.Session()
	if sess.Authenticated() {
		if err := s.gateway.Logout(ctx, sess); err != nil {
			logger.GetLogger().WithError(err).Debug("Server logout failed, clearing local session anyway")
		}
	}
	return s.Clear()
}

func (s *Store) put(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(TokenKey, token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.token = token
	return nil
}
