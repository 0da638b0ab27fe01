package client

import (
	"context"
	"net/http"
)

// ListTenants 获取全部住户
func (c *Client) ListTenants(ctx context.Context, sess Session) ([]Tenant, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	tenants := []Tenant{}
	if err := c.doJSON(ctx, &sess, http.MethodGet, "/api/tenants", nil, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// CreateTenant 新增住户；不会修改房间状态
func (c *Client) CreateTenant(ctx context.Context, sess Session, t NewTenant) (*Tenant, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if verr := ValidateNewTenant(t); verr != nil {
		return nil, verr
	}
	var res struct {
		Tenant Tenant `json:"tenant"`
	}
	if err := c.doJSON(ctx, &sess, http.MethodPost, "/api/tenants", t, &res); err != nil {
		return nil, err
	}
	return &res.Tenant, nil
}
