package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/scoretime/builder"
	"github.com/jsphweid/scoretime/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreYaml = `title: Two Voices
parts:
  - measures:
      - nodes:
          - kind: attributes
            attributes: {divisions: 1, time: {beats: 4, beatType: 4}}
          - kind: note
            note: {pitch: {step: C, octave: 4}, duration: 2}
          - kind: backup
            duration: 2
          - kind: note
            note: {pitch: {step: E, octave: 4}, duration: 2}
`

func newTestServer(t *testing.T) *Server {
	path := filepath.Join(t.TempDir(), "two.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scoreYaml), 0666))
	s, err := New(path)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, url string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w.Result()
}

func decode[T any](t *testing.T, resp *http.Response) T {
	var v T
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestTimelineSummary(t *testing.T) {
	s := newTestServer(t)
	resp := get(t, s, "/timeline")

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	summary := decode[model.TimelineSummary](t, resp)
	assert.Equal("Two Voices", summary.Title)
	assert.Equal(2, summary.NumEvents)
	assert.Equal(1, summary.NumParts)
	assert.NotEmpty(summary.Revision)
	assert.InDelta(2.0, summary.Duration, 1e-9)
}

func TestEventLookup(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, "/events/0")
	assert.Equal(t, 200, resp.StatusCode)
	e := decode[model.EventResponse](t, resp)
	assert.Equal(t, "60-64", e.Chord)
	assert.Len(t, e.OnNotes, 2)

	assert.Equal(t, 404, get(t, s, "/events/1").StatusCode)
	assert.Equal(t, 400, get(t, s, "/events/abc").StatusCode)
}

func TestEventsRange(t *testing.T) {
	s := newTestServer(t)

	all := decode[[]model.EventResponse](t, get(t, s, "/events"))
	assert.Len(t, all, 2)

	later := decode[[]model.EventResponse](t, get(t, s, "/events?from=1"))
	require.Len(t, later, 1)
	assert.Equal(t, 2, later[0].Tick)

	assert.Equal(t, 400, get(t, s, "/events?to=x").StatusCode)
}

func TestAttributesInEffect(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, "/attributes/3")
	assert.Equal(t, 200, resp.StatusCode)
	marker := decode[model.AttributesMarker](t, resp)
	assert.Equal(t, 0, marker.Tick)
	assert.Equal(t, 1, marker.Divisions())

	assert.Equal(t, 404, get(t, s, "/attributes/-1").StatusCode)
}

func TestEmptyCollectionsAreArrays(t *testing.T) {
	s := newTestServer(t)
	for _, url := range []string{"/loops", "/endings", "/tempos", "/diagnostics"} {
		body, err := io.ReadAll(get(t, s, url).Body)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(body), url)
	}
}

func TestReloadSwapsRevision(t *testing.T) {
	s := newTestServer(t)
	before := decode[model.TimelineSummary](t, get(t, s, "/timeline"))

	require.NoError(t, os.WriteFile(s.path, []byte(strings.Replace(scoreYaml, "duration: 2}", "duration: 4}", 1)), 0666))
	require.NoError(t, s.Reload())

	after := decode[model.TimelineSummary](t, get(t, s, "/timeline"))
	assert.NotEqual(t, before.Revision, after.Revision)
	assert.Equal(t, 3, after.NumEvents)
}

func TestBuildEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/build", strings.NewReader(scoreYaml))
	w := httptest.NewRecorder()
	NewFromSequence(builder.Build(nil)).Router().ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, 200, resp.StatusCode)
	tl := decode[model.Timeline](t, resp)
	assert.Len(t, tl.Events, 2)
	assert.Len(t, tl.Events[0].OnNotes, 2)

	bad := httptest.NewRequest(http.MethodPost, "/build", strings.NewReader(`{"parts": 3}`))
	bad.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	HandleBuild(w, bad)
	assert.Equal(t, 400, w.Result().StatusCode)
}
