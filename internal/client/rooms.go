package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type roomBody struct {
	Message string `json:"message"`
	Room    Room   `json:"room"`
}

type roomsBody struct {
	Rooms []Room `json:"rooms"`
}

// ListRooms 获取全部房间，顺序不保证
func (c *Client) ListRooms(ctx context.Context, sess Session) ([]Room, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res roomsBody
	if err := c.doJSON(ctx, &sess, http.MethodGet, "/api/rooms", nil, &res); err != nil {
		return nil, err
	}
	if res.Rooms == nil {
		res.Rooms = []Room{}
	}
	return res.Rooms, nil
}

// GetRoom 获取单个房间（编辑表单预填）
func (c *Client) GetRoom(ctx context.Context, sess Session, id uint64) (*Room, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res roomBody
	if err := c.doJSON(ctx, &sess, http.MethodGet, fmt.Sprintf("/api/rooms/%d/edit", id), nil, &res); err != nil {
		return nil, err
	}
	return &res.Room, nil
}

// CreateRoom 新增房间，返回服务端分配ID后的房间
func (c *Client) CreateRoom(ctx context.Context, sess Session, fields RoomFields) (*Room, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res roomBody
	if err := c.doJSON(ctx, &sess, http.MethodPost, "/api/add-room", fields, &res); err != nil {
		return nil, err
	}
	return &res.Room, nil
}

// UpdateRoom 更新房间，返回服务端规范化后的房间
func (c *Client) UpdateRoom(ctx context.Context, sess Session, id uint64, fields RoomFields) (*Room, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res roomBody
	if err := c.doJSON(ctx, &sess, http.MethodPut, fmt.Sprintf("/api/rooms/%d", id), fields, &res); err != nil {
		return nil, err
	}
	return &res.Room, nil
}

// DeleteRoom 删除房间
func (c *Client) DeleteRoom(ctx context.Context, sess Session, id uint64) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return c.doJSON(ctx, &sess, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", id), nil, nil)
}

// SetRoomStatus 按房间号（不是ID）更新状态
func (c *Client) SetRoomStatus(ctx context.Context, sess Session, roomNumber, status string) (*Room, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res roomBody
	path := "/api/rooms/" + url.PathEscape(roomNumber) + "/status"
	if err := c.doJSON(ctx, &sess, http.MethodPut, path, map[string]string{"status": status}, &res); err != nil {
		return nil, err
	}
	return &res.Room, nil
}

// VacantRooms 获取空房
func (c *Client) VacantRooms(ctx context.Context, sess Session) ([]VacantRoom, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res struct {
		Rooms []VacantRoom `json:"rooms"`
	}
	if err := c.doJSON(ctx, &sess, http.MethodGet, "/api/vacant-rooms", nil, &res); err != nil {
		return nil, err
	}
	if res.Rooms == nil {
		res.Rooms = []VacantRoom{}
	}
	return res.Rooms, nil
}

// RoomStatistics 获取房间状态统计
func (c *Client) RoomStatistics(ctx context.Context, sess Session) (*Statistics, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res Statistics
	if err := c.doJSON(ctx, &sess, http.MethodGet, "/api/room-statistics", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
