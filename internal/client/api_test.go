package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

var sess = Session{Token: "token"}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"unauthenticated", 401, `{"message":"Unauthenticated."}`, func(t *testing.T, err error) {
			assert.True(t, IsAuth(err))
		}},
		{"not found", 404, `{"message":"Room not found"}`, func(t *testing.T, err error) {
			assert.True(t, IsNotFound(err))
		}},
		{"duplicate", 422, `{"message":"The room number has already been taken.","errors":{"room_number":["The room number has already been taken."]}}`, func(t *testing.T, err error) {
			var dup *DuplicateError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, "room_number", dup.Field)
		}},
		{"validation", 422, `{"message":"The selected room type is invalid.","errors":{"room_type":["The selected room type is invalid."]}}`, func(t *testing.T, err error) {
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "The selected room type is invalid.", verr.Field("room_type"))
			assert.False(t, IsDuplicate(err))
		}},
		{"upload validation", 400, `{"message":"bad","errors":{"profile_picture":["The profile picture field must be an image."]}}`, func(t *testing.T, err error) {
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.NotEmpty(t, verr.Field("profile_picture"))
		}},
		{"other", 418, `{}`, func(t *testing.T, err error) {
			var serr *StatusError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, 418, serr.Status)
		}},
		{"server error", 500, `{"message":"Server Error"}`, func(t *testing.T, err error) {
			var nerr *NetworkError
			require.True(t, errors.As(err, &nerr))
			assert.Equal(t, 500, nerr.Status)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := fixedServer(t, tt.status, tt.body)
			_, err := New(srv.URL).ListRooms(context.Background(), sess)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestBreakerOpensWithoutRetrying(t *testing.T) {
	srv, hits := fixedServer(t, 503, `{"message":"down"}`)
	c := New(srv.URL)

	for i := 0; i < 3; i++ {
		_, err := c.RoomStatistics(context.Background(), sess)
		require.True(t, IsNetwork(err))
	}
	assert.EqualValues(t, 3, atomic.LoadInt32(hits))

	_, err := c.RoomStatistics(context.Background(), sess)
	assert.True(t, IsNetwork(err))
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.EqualValues(t, 3, atomic.LoadInt32(hits))
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	srv, hits := fixedServer(t, 404, `{"message":"Room not found"}`)
	c := New(srv.URL)

	for i := 0; i < 5; i++ {
		err := c.DeleteRoom(context.Background(), sess, 1)
		assert.True(t, IsNotFound(err))
	}
	assert.EqualValues(t, 5, atomic.LoadInt32(hits))
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).ListRooms(context.Background(), sess)
	assert.True(t, IsNetwork(err))
}

func TestRequiresSession(t *testing.T) {
	srv, hits := fixedServer(t, 200, `{"rooms":[]}`)
	c := New(srv.URL)

	_, err := c.ListRooms(context.Background(), Session{})
	assert.True(t, IsAuth(err))
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestLoginValidatesLocally(t *testing.T) {
	srv, hits := fixedServer(t, 200, `{}`)
	c := New(srv.URL)

	_, err := c.Login(context.Background(), "not-an-email", "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Field("email"))
	assert.NotEmpty(t, verr.Field("password"))
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestSendsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		assert.Equal(t, "/api/rooms/A%201/status", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"message":"ok","room":{"id":3,"room_number":"A 1","status":"occupied"}}`))
	}))
	defer srv.Close()

	room, err := New(srv.URL).SetRoomStatus(context.Background(), sess, "A 1", StatusOccupied)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token", got)
	assert.Equal(t, uint64(3), room.ID)
}
