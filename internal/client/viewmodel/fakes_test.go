package viewmodel

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"dormhub/internal/client"
)

type staticSession struct{}

func (staticSession) Session() client.Session { return client.Session{Token: "token"} }

// fakeServer 内存仓储，模拟服务端行为
type fakeServer struct {
	mu         sync.Mutex
	nextID     uint64
	rooms      map[uint64]client.Room
	failDelete map[uint64]error
	deletes    []uint64

	tenants   []client.Tenant
	statusErr error
	stats     client.Statistics
	statsErr  error
	statsHits int
}

func newFakeServer(numbers ...string) *fakeServer {
	s := &fakeServer{rooms: map[uint64]client.Room{}, failDelete: map[uint64]error{}}
	for _, n := range numbers {
		s.nextID++
		s.rooms[s.nextID] = client.Room{ID: s.nextID, RoomNumber: n, RoomType: "single", Status: client.StatusVacant}
	}
	return s
}

func (s *fakeServer) ListRooms(ctx context.Context, sess client.Session) ([]client.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]client.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeServer) CreateRoom(ctx context.Context, sess client.Session, f client.RoomFields) (*client.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.RoomNumber == f.RoomNumber {
			return nil, &client.DuplicateError{Field: "room_number", Message: "The room number has already been taken."}
		}
	}
	s.nextID++
	room := client.Room{ID: s.nextID, RoomNumber: f.RoomNumber, RoomType: f.RoomType, Price: f.Price, Floor: f.Floor, Description: f.Description, Status: f.Status}
	if room.Status == "" {
		room.Status = client.StatusVacant
	}
	s.rooms[room.ID] = room
	return &room, nil
}

func (s *fakeServer) UpdateRoom(ctx context.Context, sess client.Session, id uint64, f client.RoomFields) (*client.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, &client.NotFoundError{Message: "Room not found"}
	}
	room.RoomNumber = f.RoomNumber
	room.RoomType = f.RoomType
	room.Price = f.Price
	room.Floor = f.Floor
	room.Description = f.Description
	if f.Status != "" {
		room.Status = f.Status
	}
	// 服务端规范化
	if room.Description == nil {
		d := ""
		room.Description = &d
	}
	s.rooms[id] = room
	return &room, nil
}

func (s *fakeServer) DeleteRoom(ctx context.Context, sess client.Session, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, id)
	if err := s.failDelete[id]; err != nil {
		return err
	}
	if _, ok := s.rooms[id]; !ok {
		return &client.NotFoundError{Message: "Room not found"}
	}
	delete(s.rooms, id)
	return nil
}

func (s *fakeServer) ListTenants(ctx context.Context, sess client.Session) ([]client.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.Tenant(nil), s.tenants...), nil
}

func (s *fakeServer) CreateTenant(ctx context.Context, sess client.Session, t client.NewTenant) (*client.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tenants {
		if existing.EmailAddress == t.EmailAddress {
			return nil, &client.DuplicateError{Field: "email_address", Message: "The email address has already been taken."}
		}
	}
	tenant := client.Tenant{ID: uint64(len(s.tenants) + 1), Name: t.Name, EmailAddress: t.EmailAddress, ContactNumber: t.ContactNumber, Room: strings.TrimSpace(t.Room)}
	s.tenants = append(s.tenants, tenant)
	return &tenant, nil
}

func (s *fakeServer) VacantRooms(ctx context.Context, sess client.Session) ([]client.VacantRoom, error) {
	rooms, _ := s.ListRooms(ctx, sess)
	out := []client.VacantRoom{}
	for _, r := range rooms {
		if r.Status == client.StatusVacant {
			out = append(out, client.VacantRoom{ID: r.ID, RoomNumber: r.RoomNumber})
		}
	}
	return out, nil
}

func (s *fakeServer) SetRoomStatus(ctx context.Context, sess client.Session, number, status string) (*client.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	for id, r := range s.rooms {
		if r.RoomNumber == number {
			r.Status = status
			s.rooms[id] = r
			return &r, nil
		}
	}
	return nil, &client.NotFoundError{Message: "Room not found"}
}

func (s *fakeServer) RoomStatistics(ctx context.Context, sess client.Session) (*client.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsHits++
	if s.statsErr != nil {
		return nil, s.statsErr
	}
	stats := s.stats
	return &stats, nil
}

func (s *fakeServer) has(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rooms[id]
	return ok
}

var errTransport = &client.NetworkError{Op: "DELETE /api/rooms/2", Err: errors.New("connection reset")}

// blockingRooms 在 release 关闭前挂起创建和删除请求
type blockingRooms struct {
	*fakeServer
	started chan struct{}
	release chan struct{}
}

func newBlockingRooms(srv *fakeServer) *blockingRooms {
	return &blockingRooms{fakeServer: srv, started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (b *blockingRooms) CreateRoom(ctx context.Context, sess client.Session, f client.RoomFields) (*client.Room, error) {
	b.started <- struct{}{}
	<-b.release
	return b.fakeServer.CreateRoom(ctx, sess, f)
}

func (b *blockingRooms) DeleteRoom(ctx context.Context, sess client.Session, id uint64) error {
	b.started <- struct{}{}
	<-b.release
	return b.fakeServer.DeleteRoom(ctx, sess, id)
}
