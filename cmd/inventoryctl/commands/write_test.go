package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inventory-system/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadFlags_Build(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "room.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"name":"101","comment":"угловая"}`), 0o600))
	photo := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(photo, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	f := payloadFlags{
		file:    file,
		data:    `{"comment":"у окна"}`,
		set:     map[string]string{"short_name": "101"},
		setJSON: map[string]string{"responsible_user_id": "7", "temp_responsible_user_id": "null"},
		photo:   photo,
	}

	fields, err := f.build(strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, "101", fields["name"])
	assert.Equal(t, "у окна", fields["comment"])
	assert.Equal(t, "101", fields["short_name"])
	assert.Equal(t, 7.0, fields["responsible_user_id"])
	assert.Contains(t, fields, "temp_responsible_user_id")
	assert.Nil(t, fields["temp_responsible_user_id"])
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, fields["photo"])
}

func TestPayloadFlags_Stdin(t *testing.T) {
	f := payloadFlags{file: "-"}

	fields, err := f.build(strings.NewReader(`{"name":"Списано"}`))

	require.NoError(t, err)
	assert.Equal(t, client.Raw{"name": "Списано"}, fields)
}

func TestPayloadFlags_Errors(t *testing.T) {
	_, err := (&payloadFlags{data: `[1,2]`}).build(nil)
	assert.ErrorContains(t, err, "--data")

	_, err = (&payloadFlags{setJSON: map[string]string{"room_id": "три"}}).build(nil)
	assert.ErrorContains(t, err, "--set-json room_id")

	assert.True(t, (&payloadFlags{}).empty())
	assert.False(t, (&payloadFlags{set: map[string]string{"name": "x"}}).empty())
}

func TestSaveChanges_SendsWholeRecord(t *testing.T) {
	var sent map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/equipment/12", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"body":   map[string]interface{}{"id": 12, "name": "Монитор", "inventory_number": 1001, "room_id": 3},
		})
	})
	mux.HandleFunc("PUT /api/equipment/12", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&sent)
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sessionFile := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(sessionFile, []byte(`{"token":"tok-1","role":"teacher"}`), 0o600))
	session := client.NewSession()
	require.NoError(t, session.Load(sessionFile))
	api := client.New(srv.URL, time.Second, session)

	saved, err := saveChanges(context.Background(), api, "equipment", 12, client.Raw{"room_id": 4.0, "comment": "перенесен"})

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"id": 12.0, "name": "Монитор", "inventory_number": 1001.0, "room_id": 4.0, "comment": "перенесен",
	}, sent)
	assert.Equal(t, "перенесен", saved["comment"])
}
