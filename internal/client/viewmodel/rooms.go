// Package viewmodel 客户端页面状态（房间、住户、统计面板）。
// 本地缓存只由完整列表请求重建，其余变更都在服务端调用返回后才写入。
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dormhub/internal/client"
	"dormhub/pkg/logger"
)

// State 房间页面状态
type State int

const (
	Browsing State = iota
	Editing
	MultiSelecting
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Editing:
		return "editing"
	case MultiSelecting:
		return "multi-selecting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrInvalidTransition 当前状态不接受该事件
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnknownRoom 房间不在本地缓存中
	ErrUnknownRoom = errors.New("room not in cache")
)

// SessionSource 提供当前会话
type SessionSource interface {
	Session() client.Session
}

// RoomAPI 房间仓储接口
type RoomAPI interface {
	ListRooms(ctx context.Context, sess client.Session) ([]client.Room, error)
	CreateRoom(ctx context.Context, sess client.Session, fields client.RoomFields) (*client.Room, error)
	UpdateRoom(ctx context.Context, sess client.Session, id uint64, fields client.RoomFields) (*client.Room, error)
	DeleteRoom(ctx context.Context, sess client.Session, id uint64) error
}

// RoomOptions 房间视图选项
type RoomOptions struct {
	// ConfirmedDeletesOnly 批量删除后只移除服务端确认删除（含404）的ID。
	// 默认 false：无论单个删除成功与否都移除全部已选ID，缓存可能与服务端不一致，直到下一次 Load。
	ConfirmedDeletesOnly bool
}

// BulkDeleteResult 批量删除结果
type BulkDeleteResult struct {
	Requested []uint64         // 发起删除时捕获的选择集
	Deleted   []uint64         // 服务端确认删除
	Failed    map[uint64]error // 删除失败的ID及原因
	Removed   []uint64         // 实际从本地缓存移除的ID
}

// RoomViewModel 房间列表缓存与多选批量操作状态机
type RoomViewModel struct {
	api      RoomAPI
	sessions SessionSource
	opts     RoomOptions

	mu        sync.Mutex
	state     State
	rooms     []client.Room
	selected  []uint64
	editingID uint64 // 0 表示新建
	form      client.RoomFields
	pending   bool // 保存或批量删除请求尚未返回
}

// NewRoomViewModel 创建房间视图
func NewRoomViewModel(api RoomAPI, sessions SessionSource, opts RoomOptions) *RoomViewModel {
	return &RoomViewModel{
		api:      api,
		sessions: sessions,
		opts:     opts,
		state:    Browsing,
		rooms:    []client.Room{},
	}
}

// Load 用完整列表替换本地缓存，并剔除已不存在的选择项
func (vm *RoomViewModel) Load(ctx context.Context) error {
	rooms, err := vm.api.ListRooms(ctx, vm.sessions.Session())
	if err != nil {
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.rooms = append([]client.Room(nil), rooms...)
	kept := vm.selected[:0]
	for _, id := range vm.selected {
		if vm.indexLocked(id) >= 0 {
			kept = append(kept, id)
		}
	}
	vm.selected = kept
	return nil
}

// State 当前状态
func (vm *RoomViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Rooms 本地缓存快照
func (vm *RoomViewModel) Rooms() []client.Room {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]client.Room(nil), vm.rooms...)
}

// Room 从缓存中取单个房间
func (vm *RoomViewModel) Room(id uint64) (client.Room, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if i := vm.indexLocked(id); i >= 0 {
		return vm.rooms[i], true
	}
	return client.Room{}, false
}

// Selection 已选ID（按选择顺序）
func (vm *RoomViewModel) Selection() []uint64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]uint64(nil), vm.selected...)
}

// Pending 是否有保存或批量删除请求未返回，期间拒绝改变状态的事件
func (vm *RoomViewModel) Pending() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.pending
}

// IsSelected 是否已选
func (vm *RoomViewModel) IsSelected(id uint64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.selectedIndexLocked(id) >= 0
}

// ========== 单个编辑/新建 ==========

// OpenEditor 打开编辑框；id 为 0 时新建，否则用当前值预填
func (vm *RoomViewModel) OpenEditor(id uint64) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state != Browsing {
		return fmt.Errorf("open editor while %s: %w", vm.state, ErrInvalidTransition)
	}

	form := client.RoomFields{Status: client.StatusVacant}
	if id != 0 {
		i := vm.indexLocked(id)
		if i < 0 {
			return fmt.Errorf("room %d: %w", id, ErrUnknownRoom)
		}
		form = vm.rooms[i].Fields()
	}

	vm.state = Editing
	vm.editingID = id
	vm.form = form
	return nil
}

// Form 当前表单值
func (vm *RoomViewModel) Form() client.RoomFields {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.form
}

// SetForm 更新表单值
func (vm *RoomViewModel) SetForm(fields client.RoomFields) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.acceptLocked("edit form", Editing); err != nil {
		return err
	}
	vm.form = fields
	return nil
}

// Save 提交表单。成功后用服务端返回的房间更新缓存并关闭编辑框；失败时保留表单
func (vm *RoomViewModel) Save(ctx context.Context) (*client.Room, error) {
	vm.mu.Lock()
	if err := vm.acceptLocked("save", Editing); err != nil {
		vm.mu.Unlock()
		return nil, err
	}
	id, form := vm.editingID, vm.form
	vm.pending = true
	vm.mu.Unlock()

	var (
		room *client.Room
		err  error
	)
	sess := vm.sessions.Session()
	if id != 0 {
		room, err = vm.api.UpdateRoom(ctx, sess, id, form)
	} else {
		room, err = vm.api.CreateRoom(ctx, sess, form)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.pending = false
	if err != nil {
		return nil, err
	}
	if id != 0 {
		if i := vm.indexLocked(id); i >= 0 {
			vm.rooms[i] = *room
		}
	} else {
		vm.rooms = append(vm.rooms, *room)
	}
	vm.resetEditorLocked()
	return room, nil
}

// CloseEditor 放弃编辑；保存请求未返回时忽略
func (vm *RoomViewModel) CloseEditor() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.state == Editing && !vm.pending {
		vm.resetEditorLocked()
	}
}

func (vm *RoomViewModel) resetEditorLocked() {
	vm.state = Browsing
	vm.editingID = 0
	vm.form = client.RoomFields{}
}

// ========== 多选 ==========

// LongPress 长按进入多选，被按下的房间成为首个选中项
func (vm *RoomViewModel) LongPress(id uint64) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state == Editing || vm.pending {
		return vm.rejectLocked("long-press")
	}
	if vm.indexLocked(id) < 0 {
		return fmt.Errorf("room %d: %w", id, ErrUnknownRoom)
	}

	vm.state = MultiSelecting
	vm.selected = []uint64{id}
	return nil
}

// Tap 多选时切换选中状态并返回 nil；浏览时返回房间用于详情展示
func (vm *RoomViewModel) Tap(id uint64) (*client.Room, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.pending {
		return nil, vm.rejectLocked("tap")
	}
	i := vm.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("room %d: %w", id, ErrUnknownRoom)
	}

	switch vm.state {
	case MultiSelecting:
		if j := vm.selectedIndexLocked(id); j >= 0 {
			vm.selected = append(vm.selected[:j], vm.selected[j+1:]...)
		} else {
			vm.selected = append(vm.selected, id)
		}
		return nil, nil
	case Browsing:
		room := vm.rooms[i]
		return &room, nil
	default:
		return nil, fmt.Errorf("tap while %s: %w", vm.state, ErrInvalidTransition)
	}
}

// CancelSelection 退出多选，不修改仓储；批量删除未返回时忽略
func (vm *RoomViewModel) CancelSelection() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.state == MultiSelecting && !vm.pending {
		vm.state = Browsing
		vm.selected = nil
	}
}

// DeleteSelected 对每个已选ID并发发起独立删除，全部返回后更新缓存并回到浏览状态
func (vm *RoomViewModel) DeleteSelected(ctx context.Context) (*BulkDeleteResult, error) {
	vm.mu.Lock()
	if err := vm.acceptLocked("bulk delete", MultiSelecting); err != nil {
		vm.mu.Unlock()
		return nil, err
	}
	ids := append([]uint64(nil), vm.selected...)
	vm.pending = true
	vm.mu.Unlock()

	sess := vm.sessions.Session()
	outcomes := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uint64) {
			defer wg.Done()
			outcomes[i] = vm.api.DeleteRoom(ctx, sess, id)
		}(i, id)
	}
	wg.Wait()

	result := &BulkDeleteResult{
		Requested: ids,
		Failed:    map[uint64]error{},
	}
	remove := map[uint64]bool{}
	for i, id := range ids {
		err := outcomes[i]
		if err == nil {
			result.Deleted = append(result.Deleted, id)
			remove[id] = true
			continue
		}
		result.Failed[id] = err
		if !vm.opts.ConfirmedDeletesOnly || client.IsNotFound(err) {
			remove[id] = true
		}
	}
	if len(result.Failed) > 0 {
		logger.GetLogger().Warnf("Bulk delete: %d of %d room deletes failed", len(result.Failed), len(ids))
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	kept := vm.rooms[:0]
	for _, r := range vm.rooms {
		if remove[r.ID] {
			result.Removed = append(result.Removed, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	vm.rooms = kept
	vm.selected = nil
	vm.state = Browsing
	vm.pending = false

	return result, nil
}

// acceptLocked 当前状态为 want 且没有未返回的请求时接受事件
func (vm *RoomViewModel) acceptLocked(event string, want State) error {
	if vm.state != want || vm.pending {
		return vm.rejectLocked(event)
	}
	return nil
}

func (vm *RoomViewModel) rejectLocked(event string) error {
	if vm.pending {
		return fmt.Errorf("%s while %s request in flight: %w", event, vm.state, ErrInvalidTransition)
	}
	return fmt.Errorf("%s while %s: %w", event, vm.state, ErrInvalidTransition)
}

func (vm *RoomViewModel) indexLocked(id uint64) int {
	for i := range vm.rooms {
		if vm.rooms[i].ID == id {
			return i
		}
	}
	return -1
}

func (vm *RoomViewModel) selectedIndexLocked(id uint64) int {
	for i, s := range vm.selected {
		if s == id {
			return i
		}
	}
	return -1
}
