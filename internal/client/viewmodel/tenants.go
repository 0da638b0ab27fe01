package viewmodel

import (
	"context"
	"strings"
	"sync"

	"dormhub/internal/client"
)

// TenantAPI 住户相关接口
type TenantAPI interface {
	ListTenants(ctx context.Context, sess client.Session) ([]client.Tenant, error)
	CreateTenant(ctx context.Context, sess client.Session, t client.NewTenant) (*client.Tenant, error)
	VacantRooms(ctx context.Context, sess client.Session) ([]client.VacantRoom, error)
	SetRoomStatus(ctx context.Context, sess client.Session, roomNumber, status string) (*client.Room, error)
}

// AddTenantResult 新增住户结果
type AddTenantResult struct {
	Tenant client.Tenant
	// RoomStatusErr 住户已创建但房间未能标记为入住；不做补偿
	RoomStatusErr error
}

// TenantRoster 住户名册与空房下拉列表
type TenantRoster struct {
	api      TenantAPI
	sessions SessionSource

	mu      sync.Mutex
	tenants []client.Tenant
	vacant  []client.VacantRoom
	query   string
}

// NewTenantRoster 创建住户名册
func NewTenantRoster(api TenantAPI, sessions SessionSource) *TenantRoster {
	return &TenantRoster{
		api:      api,
		sessions: sessions,
		tenants:  []client.Tenant{},
		vacant:   []client.VacantRoom{},
	}
}

// Load 拉取住户与空房列表
func (r *TenantRoster) Load(ctx context.Context) error {
	sess := r.sessions.Session()

	tenants, err := r.api.ListTenants(ctx, sess)
	if err != nil {
		return err
	}
	vacant, err := r.api.VacantRooms(ctx, sess)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants = append([]client.Tenant(nil), tenants...)
	r.vacant = append([]client.VacantRoom(nil), vacant...)
	return nil
}

// Tenants 全部住户
func (r *TenantRoster) Tenants() []client.Tenant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]client.Tenant(nil), r.tenants...)
}

// VacantRooms 可分配的空房
func (r *TenantRoster) VacantRooms() []client.VacantRoom {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]client.VacantRoom(nil), r.vacant...)
}

// Search 设置搜索词并返回结果：在已拉取列表上按姓名做不区分大小写的子串匹配
func (r *TenantRoster) Search(query string) []client.Tenant {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = query
	return r.filteredLocked()
}

// Filtered 当前搜索词下的结果
func (r *TenantRoster) Filtered() []client.Tenant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filteredLocked()
}

func (r *TenantRoster) filteredLocked() []client.Tenant {
	return FilterTenants(r.tenants, r.query)
}

// FilterTenants 按姓名子串过滤，空搜索词返回全部
func FilterTenants(tenants []client.Tenant, query string) []client.Tenant {
	out := []client.Tenant{}
	q := strings.ToLower(query)
	for _, t := range tenants {
		if q == "" || strings.Contains(strings.ToLower(t.Name), q) {
			out = append(out, t)
		}
	}
	return out
}

// AddTenant 先创建住户再把房间标记为入住，两次调用互相独立。
// 第二步失败时住户仍会加入名册，房间保留在空房列表中，错误通过 RoomStatusErr 返回。
func (r *TenantRoster) AddTenant(ctx context.Context, t client.NewTenant) (*AddTenantResult, error) {
	sess := r.sessions.Session()

	tenant, err := r.api.CreateTenant(ctx, sess, t)
	if err != nil {
		return nil, err
	}
	result := &AddTenantResult{Tenant: *tenant}

	// 以服务端规范化后的房间号为准
	_, statusErr := r.api.SetRoomStatus(ctx, sess, tenant.Room, client.StatusOccupied)
	result.RoomStatusErr = statusErr

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants = append(r.tenants, *tenant)
	if statusErr == nil {
		kept := r.vacant[:0]
		for _, v := range r.vacant {
			if v.RoomNumber != tenant.Room {
				kept = append(kept, v)
			}
		}
		r.vacant = kept
	}
	return result, nil
}
