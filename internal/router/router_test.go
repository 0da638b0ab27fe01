package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"dormhub/internal/database"
	"dormhub/internal/router"
	"dormhub/pkg/config"
	"dormhub/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// memRevoker 内存吊销存储
type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: map[string]time.Time{}}
}

func (m *memRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl > 0 {
		m.revoked[id] = time.Now().Add(ttl)
	}
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[id]
	return ok && time.Now().Before(exp), nil
}

type testEnv struct {
	engine  *gin.Engine
	db      *gorm.DB
	storage string
}

const publicURL = "http://localhost:8000/storage"

func setupEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.MigrateDB(db))

	storage := t.TempDir()
	cfg := &config.Config{
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders: []string{"Authorization", "Content-Type"},
		},
		Storage: config.StorageConfig{Dir: storage, PublicURL: publicURL, UploadMaxKB: 2048},
	}

	engine := router.SetupRouter(router.Deps{
		Config:     cfg,
		DB:         db,
		JWTManager: jwt.NewJWTManager("test-secret", time.Hour),
		Revoker:    newMemRevoker(),
	})
	return &testEnv{engine: engine, db: db, storage: storage}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/register", "", map[string]string{
		"name":         "Admin",
		"phone_number": "5551234567",
		"email":        email,
		"password":     "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func TestHealth(t *testing.T) {
	env := setupEnv(t)

	w := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupEnv(t)

	for _, path := range []string{"/api/rooms", "/api/tenants", "/api/room-statistics", "/api/user", "/api/profile"} {
		w := env.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = env.request(t, http.MethodGet, path, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := setupEnv(t)
	env.register(t, "admin@example.com")

	w := env.request(t, http.MethodPost, "/api/login", "", map[string]string{"email": "admin@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password.", decode(t, w)["message"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	env.register(t, "admin@example.com")

	w := env.request(t, http.MethodPost, "/api/register", "", map[string]string{
		"name":         "Other",
		"phone_number": "5550000000",
		"email":        "admin@example.com",
		"password":     "password123",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	errs := decode(t, w)["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"The email has already been taken."}, errs["email"])
}

func TestLogoutRevokesOnlyThatToken(t *testing.T) {
	env := setupEnv(t)
	first := env.register(t, "admin@example.com")
	second := env.login(t, "admin@example.com")
	assert.NotEqual(t, first, second)

	// 新登录不会使旧token失效
	w := env.request(t, http.MethodGet, "/api/user", first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "admin@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")

	w = env.request(t, http.MethodPost, "/api/logout", first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully!", decode(t, w)["message"])

	assert.Equal(t, http.StatusUnauthorized, env.request(t, http.MethodGet, "/api/user", first, nil).Code)
	assert.Equal(t, http.StatusOK, env.request(t, http.MethodGet, "/api/user", second, nil).Code)
}

func TestRoomLifecycle(t *testing.T) {
	env := setupEnv(t)
	token := env.register(t, "admin@example.com")

	w := env.request(t, http.MethodPost, "/api/add-room", token, map[string]interface{}{
		"room_number": "101",
		"room_type":   "single",
		"price":       450,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Room added successfully", body["message"])
	room := body["room"].(map[string]interface{})
	assert.Equal(t, "vacant", room["status"])
	id := int(room["id"].(float64))

	// 重复房间号
	w = env.request(t, http.MethodPost, "/api/add-room", token, map[string]interface{}{"room_number": "101", "room_type": "double"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := decode(t, w)["errors"].(map[string]interface{})
	msgs := errs["room_number"].([]interface{})
	assert.True(t, strings.HasSuffix(msgs[0].(string), "has already been taken."))

	path := "/api/rooms/" + strconv.Itoa(id)

	w = env.request(t, http.MethodGet, path+"/edit", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "101", decode(t, w)["room"].(map[string]interface{})["room_number"])

	w = env.request(t, http.MethodPut, path, token, map[string]interface{}{"room_number": "101", "room_type": "suite", "floor": "1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	room = decode(t, w)["room"].(map[string]interface{})
	assert.Equal(t, "suite", room["room_type"])
	assert.Equal(t, "1", room["floor"])

	w = env.request(t, http.MethodGet, "/api/vacant-rooms", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["rooms"], 1)

	// 状态接口按房间号寻址，缺省为 occupied
	w = env.request(t, http.MethodPut, "/api/rooms/101/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "occupied", decode(t, w)["room"].(map[string]interface{})["status"])

	w = env.request(t, http.MethodPut, "/api/rooms/999/status", token, map[string]string{"status": "vacant"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/room-statistics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"occupied": float64(1), "vacant": float64(0), "maintenance": float64(0)}, decode(t, w))

	w = env.request(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Room deleted successfully", decode(t, w)["message"])

	w = env.request(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Room not found", decode(t, w)["message"])
}

func TestRoomValidationShape(t *testing.T) {
	env := setupEnv(t)
	token := env.register(t, "admin@example.com")

	w := env.request(t, http.MethodPost, "/api/add-room", token, map[string]interface{}{"room_number": "101", "room_type": "penthouse"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["message"])
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"The selected room type is invalid."}, errs["room_type"])

	w = env.request(t, http.MethodPost, "/api/add-room", token, map[string]interface{}{"room_type": "single"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs = decode(t, w)["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"The room number field is required."}, errs["room_number"])

	// 带 / 的房间号无法通过状态路由访问
	w = env.request(t, http.MethodPost, "/api/add-room", token, map[string]interface{}{"room_number": "A/1", "room_type": "single"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs = decode(t, w)["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"The room number field format is invalid."}, errs["room_number"])
}

func TestTenants(t *testing.T) {
	env := setupEnv(t)
	token := env.register(t, "admin@example.com")

	tenant := map[string]string{"name": "Alice Tan", "email_address": "alice@example.com", "contact_number": "5550001", "room": "201"}
	w := env.request(t, http.MethodPost, "/api/tenants", token, tenant)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Alice Tan", decode(t, w)["tenant"].(map[string]interface{})["name"])

	w = env.request(t, http.MethodPost, "/api/tenants", token, tenant)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "email_address")

	w = env.request(t, http.MethodGet, "/api/tenants", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "201", list[0]["room"])
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func upload(t *testing.T, env *testEnv, token, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("profile_picture", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profile/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func TestProfileUpload(t *testing.T) {
	env := setupEnv(t)
	token := env.register(t, "admin@example.com")

	w := env.request(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["profile_picture"])

	w = upload(t, env, token, "me.png", pngHeader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode(t, w)["url"].(string)
	require.True(t, strings.HasPrefix(first, publicURL+"/profile_pictures/"), first)

	firstPath := filepath.Join(env.storage, strings.TrimPrefix(first, publicURL+"/"))
	_, err := os.Stat(firstPath)
	require.NoError(t, err)

	w = env.request(t, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, first, decode(t, w)["profile_picture"])

	// 新头像替换旧文件
	w = upload(t, env, token, "me2.png", pngHeader)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err))

	w = upload(t, env, token, "notes.txt", []byte("hello"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "profile_picture")

	// 扩展名正确但内容不是图片
	w = upload(t, env, token, "fake.png", []byte("plain text pretending"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
