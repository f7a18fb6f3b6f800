//go:build e2e
// +build e2e

package e2e_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scoretime/cmd"
	"github.com/jsphweid/scoretime/model"
	"github.com/jsphweid/scoretime/server"
	"github.com/jsphweid/scoretime/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../file/testdata/volta.yaml"

func TestBuildWritesSnapshot(t *testing.T) {
	out := t.TempDir()
	t.Setenv("TIMELINE_OUT_PATH", out)

	written := cmd.Build("../file/testdata", 0)
	assert.Equal(t, 2, written)

	tl := util.ReadBinaryOrPanic[model.Timeline](filepath.Join(out, "volta.dat"))

	assert := assert.New(t)
	assert.Equal("Volta Study", tl.Title)
	assert.Equal([]model.Loop{{Begin: 0, End: 8, Count: 1}}, tl.Loops)
	assert.Equal([]model.EndingRange{
		{Begin: 4, End: 8, Numbers: []int{1}},
		{Begin: 8, End: 12, Numbers: []int{2}},
	}, tl.Endings)
	assert.InDelta(6.0, tl.Duration, 1e-9)
	assert.Empty(tl.Diagnostics)
}

func TestServeVoltaEvents(t *testing.T) {
	srv, err := server.New(fixture)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/events/0", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var e model.EventResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal("48-55-60", e.Chord)
	assert.Len(e.OnNotes, 3)
	assert.InDelta(2.0, e.WallDuration, 1e-9)
}
