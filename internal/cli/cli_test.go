package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"dormhub/internal/client"
	"dormhub/pkg/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomFlagsApplyOnlyChanged(t *testing.T) {
	var f roomFlags
	cmd := &cobra.Command{Use: "edit"}
	f.bind(cmd)
	require.NoError(t, cmd.Flags().Set("price", "12.5"))
	require.NoError(t, cmd.Flags().Set("type", "suite"))

	floor := "3"
	fields := client.RoomFields{RoomNumber: "101", RoomType: "single", Floor: &floor, Status: client.StatusOccupied}
	f.apply(cmd, &fields)

	assert.Equal(t, "101", fields.RoomNumber)
	assert.Equal(t, "suite", fields.RoomType)
	require.NotNil(t, fields.Price)
	assert.Equal(t, 12.5, *fields.Price)
	assert.Equal(t, &floor, fields.Floor)
	assert.Equal(t, client.StatusOccupied, fields.Status)
}

func TestExplain(t *testing.T) {
	assert.Nil(t, Explain(nil))

	err := Explain(&client.DuplicateError{Field: "room_number", Message: "The room number has already been taken."})
	assert.Equal(t, "room_number: The room number has already been taken.", err.Error())

	err = Explain(&client.ValidationError{Message: "Validation failed", Fields: map[string][]string{
		"room_type": {"The selected room type is invalid."},
		"price":     {"The price field must be at least 0."},
	}})
	assert.Equal(t, "Validation failed\n  price: The price field must be at least 0.\n  room_type: The selected room type is invalid.", err.Error())

	other := errors.New("boom")
	assert.Equal(t, other, Explain(other))
}

func TestCommandsRequireLogin(t *testing.T) {
	app := NewApp(&config.ClientConfig{
		APIURL:    "http://127.0.0.1:1",
		StatePath: filepath.Join(t.TempDir(), "state.db"),
	})
	defer app.Close()
	var out bytes.Buffer
	app.Out = &out

	root := RootCmd(app)
	root.SetArgs([]string{"rooms", "list"})
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	assert.Equal(t, errNotLoggedIn, err)
}

func TestParseRoomID(t *testing.T) {
	id, err := parseRoomID("42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []string{"0", "-1", "abc"} {
		_, err := parseRoomID(bad)
		assert.Error(t, err, bad)
	}
}
