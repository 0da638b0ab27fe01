package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindRoom(t *testing.T, body string) map[string][]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/add-room", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req RoomRequest
	verr := bindJSON(c, &req)
	require.NotNil(t, verr)
	return verr.Fields
}

func TestValidatorUsesJSONNames(t *testing.T) {
	// 多次创建路由时重复调用
	RegisterValidatorTagName()
	RegisterValidatorTagName()

	fields := bindRoom(t, `{"room_type":"single"}`)
	assert.Equal(t, []string{"The room number field is required."}, fields["room_number"])

	fields = bindRoom(t, `{"room_number":"A/1","room_type":"single"}`)
	assert.Equal(t, []string{"The room number field format is invalid."}, fields["room_number"])
}
