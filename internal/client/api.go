package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dormhub/pkg/logger"

	"github.com/sony/gobreaker"
)

// DefaultTimeout 单个请求的默认超时
const DefaultTimeout = 15 * time.Second

// Client dormhub API 客户端；不做任何自动重试
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// Option 客户端选项
type Option func(*Client)

// WithTimeout 设置单个请求超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New 创建客户端
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker("dormhub-api")
	return c
}

// newBreaker 连续3次网络失败后熔断；熔断期间请求直接失败，不会重发
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.GetLogger().Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}

// rawResponse 已读取完毕的响应
type rawResponse struct {
	status int
	body   []byte
}

// errorBody 服务端错误返回
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// do 发送请求并按状态码解析，out 为空时忽略响应体
func (c *Client) do(ctx context.Context, sess *Session, method, path string, body io.Reader, contentType string, out interface{}) error {
	op := method + " " + path

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dormhub-client/1.0")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		raw := &rawResponse{status: resp.StatusCode, body: data}
		if resp.StatusCode >= 500 {
			return raw, fmt.Errorf("server error %d", resp.StatusCode)
		}
		return raw, nil
	})
	if err != nil {
		status := 0
		if raw, ok := result.(*rawResponse); ok && raw != nil {
			status = raw.status
		}
		return &NetworkError{Op: op, Status: status, Err: err}
	}

	raw := result.(*rawResponse)
	if raw.status >= 200 && raw.status < 300 {
		if out == nil || len(raw.body) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw.body, out); err != nil {
			return fmt.Errorf("decode %s response: %w", op, err)
		}
		return nil
	}

	return decodeError(raw)
}

func decodeError(raw *rawResponse) error {
	var eb errorBody
	_ = json.Unmarshal(raw.body, &eb)
	if eb.Message == "" {
		eb.Message = http.StatusText(raw.status)
	}

	switch {
	case raw.status == http.StatusUnauthorized:
		return &AuthError{Message: eb.Message}
	case raw.status == http.StatusNotFound:
		return &NotFoundError{Message: eb.Message}
	case raw.status == http.StatusUnprocessableEntity:
		return validationOrDuplicate(eb.Message, eb.Errors)
	case raw.status == http.StatusBadRequest && len(eb.Errors) > 0:
		return &ValidationError{Message: eb.Message, Fields: eb.Errors}
	default:
		return &StatusError{Status: raw.status, Message: eb.Message}
	}
}

func (c *Client) doJSON(ctx context.Context, sess *Session, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, sess, method, path, body, contentType, out)
}

func requireSession(sess Session) error {
	if !sess.Authenticated() {
		return &AuthError{Message: "no session token"}
	}
	return nil
}

// AuthResult 登录/注册结果
type AuthResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// Login 用邮箱和密码换取token
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if verr := ValidateLogin(email, password); verr != nil {
		return nil, verr
	}

	var res AuthResult
	err := c.doJSON(ctx, nil, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, errors.New("login response carried no token")
	}
	return &res, nil
}

// Register 注册并获得token
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	if verr := ValidateRegistration(reg); verr != nil {
		return nil, verr
	}

	var res AuthResult
	if err := c.doJSON(ctx, nil, http.MethodPost, "/api/register", reg, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, errors.New("register response carried no token")
	}
	return &res, nil
}

// Logout 服务端吊销token
func (c *Client) Logout(ctx context.Context, sess Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return c.doJSON(ctx, &sess, http.MethodPost, "/api/logout", nil, nil)
}

// CurrentUser 获取当前用户
func (c *Client) CurrentUser(ctx context.Context, sess Session) (*User, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, &sess, http.MethodGet, "/api/user", nil, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}
