package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"dormhub/internal/client"
	"dormhub/internal/client/session"
	"dormhub/pkg/config"
)

// App 命令共享的依赖，首次使用时初始化
type App struct {
	Config *config.ClientConfig
	Out    io.Writer

	once  sync.Once
	err   error
	api   *client.Client
	kv    *session.SQLiteKV
	store *session.Store
}

// NewApp 创建命令依赖
func NewApp(cfg *config.ClientConfig) *App {
	return &App{Config: cfg, Out: os.Stdout}
}

func (a *App) init() error {
	a.once.Do(func() {
		a.api = client.New(a.Config.APIURL, client.WithTimeout(a.Config.HTTPTimeout))

		kv, err := session.OpenSQLite(a.Config.StatePath)
		if err != nil {
			a.err = err
			return
		}
		store, err := session.New(kv, a.api)
		if err != nil {
			_ = kv.Close()
			a.err = err
			return
		}
		a.kv = kv
		a.store = store
	})
	return a.err
}

// API 客户端
func (a *App) API() (*client.Client, error) {
	if err := a.init(); err != nil {
		return nil, err
	}
	return a.api, nil
}

// Store 会话存储
func (a *App) Store() (*session.Store, error) {
	if err := a.init(); err != nil {
		return nil, err
	}
	return a.store, nil
}

// LoggedIn 需要登录的命令使用，未登录时提示先登录
func (a *App) LoggedIn() (*client.Client, *session.Store, error) {
	if err := a.init(); err != nil {
		return nil, nil, err
	}
	if _, ok := a.store.Read(); !ok {
		return nil, nil, errNotLoggedIn
	}
	return a.api, a.store, nil
}

// Close 释放本地存储
func (a *App) Close() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

var errNotLoggedIn = errors.New("not logged in, run `dormctl login` first")

// Explain 把客户端错误转成面向用户的提示
func Explain(err error) error {
	if err == nil {
		return nil
	}

	var verr *client.ValidationError
	var dup *client.DuplicateError
	switch {
	case errors.As(err, &dup):
		return fmt.Errorf("%s: %s", dup.Field, dup.Message)
	case errors.As(err, &verr):
		msg := verr.Error()
		for _, field := range sortedKeys(verr.Fields) {
			for _, m := range verr.Fields[field] {
				msg += fmt.Sprintf("\n  %s: %s", field, m)
			}
		}
		return errors.New(msg)
	case client.IsAuth(err):
		return fmt.Errorf("%v (run `dormctl login` again)", err)
	case client.IsNetwork(err):
		return fmt.Errorf("server unreachable: %v", err)
	}
	return err
}
