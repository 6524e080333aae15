package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
	"github.com/vovakirdan/tui-blocks/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(config.APIConfig{
		Address:    ":0",
		SessionTTL: time.Minute,
		MaxSession: 4,
	}, log.New(io.Discard))
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createSession(t *testing.T, s *Server, seed int64) State {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/sessions", `{"seed":`+jsonInt(seed)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[State](t, rec)
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestCreateSession(t *testing.T) {
	s := newTestServer(t)
	st := createSession(t, s, 42)

	assert.NotEmpty(t, st.ID)
	assert.Equal(t, int64(42), st.Seed)
	assert.Zero(t, st.Score)
	assert.False(t, st.GameOver)

	ref := blocks.New(rand.New(rand.NewSource(42)))
	assert.Equal(t, ref.Current().Shape().String(), st.Current)
	assert.Equal(t, ref.Next().Shape().String(), st.Next)

	assert.Equal(t, 1, s.Store().Len())
}

func TestCreateSessionWithoutBody(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	st := decode[State](t, rec)
	assert.Equal(t, "/sessions/"+st.ID, rec.Header().Get("Location"))
}

func TestCreateSessionRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/sessions", `{"seed":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "bad request")
}

func TestUnknownSession(t *testing.T) {
	s := newTestServer(t)
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/sessions/nope", ""},
		{http.MethodGet, "/sessions/nope/frame", ""},
		{http.MethodGet, "/sessions/nope/board", ""},
		{http.MethodPost, "/sessions/nope/keys", `{"key":"left"}`},
		{http.MethodPost, "/sessions/nope/update", `{"elapsed":0.1}`},
		{http.MethodDelete, "/sessions/nope", ""},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(t, s, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, ErrSessionNotFound.Error(), decode[errorResponse](t, rec).Error)
		})
	}
}

func TestPostKey(t *testing.T) {
	s := newTestServer(t)
	st := createSession(t, s, 1)
	base := "/sessions/" + st.ID

	rec := do(t, s, http.MethodPost, base+"/keys", `{"key":"left","pressed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[keyResponse](t, rec).Handled)

	rec = do(t, s, http.MethodPost, base+"/keys", `{"key":"left","pressed":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[keyResponse](t, rec).Handled, "releases are not consumed")

	rec = do(t, s, http.MethodPost, base+"/keys", `{"key":"jump"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDropThenUpdateLocksPiece(t *testing.T) {
	s := newTestServer(t)
	st := createSession(t, s, 5)
	base := "/sessions/" + st.ID

	rec := do(t, s, http.MethodPost, base+"/keys", `{"key":"drop"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[keyResponse](t, rec).Handled)

	rec = do(t, s, http.MethodPost, base+"/update", `{"elapsed":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	after := decode[State](t, rec)
	assert.Equal(t, 1, after.Pieces)
	assert.Equal(t, st.Next, after.Current, "preview piece becomes current")

	rec = do(t, s, http.MethodGet, base+"/board", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, 4, strings.Count(rec.Body.String(), "#"))
}

func TestUpdateRejectsNegativeElapsed(t *testing.T) {
	s := newTestServer(t)
	st := createSession(t, s, 5)
	rec := do(t, s, http.MethodPost, "/sessions/"+st.ID+"/update", `{"elapsed":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMatchesLocalEngine(t *testing.T) {
	s := newTestServer(t)
	st := createSession(t, s, 77)
	ref := blocks.New(rand.New(rand.NewSource(77)))

	var got State
	for i := 0; i < 200; i++ {
		rec := do(t, s, http.MethodPost, "/sessions/"+st.ID+"/update", `{"elapsed":0.3}`)
		require.Equal(t, http.StatusOK, rec.Code)
		got = decode[State](t, rec)
		ref.Update(0.3)
	}
	assert.Equal(t, ref.Score(), got.Score)
	assert.Equal(t, ref.GameOver(), got.GameOver)
	assert.Equal(t, ref.Stats().PiecesLocked, got.Pieces)
	assert.Equal(t, ref.Current().Shape().String(), got.Current)
}

func TestGetFrame(t *testing.T) {
	s := newTestServer(t)
	st := createSession(t, s, 9)

	rec := do(t, s, http.MethodGet, "/sessions/"+st.ID+"/frame", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1254", rec.Header().Get("X-Vertex-Count"))
	assert.Equal(t, "36", rec.Header().Get("X-Vertex-Stride"))

	ref := blocks.New(rand.New(rand.NewSource(9)))
	want := blocks.AppendVertices(nil, ref.Render())
	assert.Equal(t, want, rec.Body.Bytes())
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(t)
	st := createSession(t, s, 1)

	rec := do(t, s, http.MethodDelete, "/sessions/"+st.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = do(t, s, http.MethodGet, "/sessions/"+st.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLimit(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 4; i++ {
		createSession(t, s, int64(i))
	}
	rec := do(t, s, http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCompression(t *testing.T) {
	s := newTestServer(t)
	st := createSession(t, s, 3)
	path := "/sessions/" + st.ID + "/board"
	plain := do(t, s, http.MethodGet, path, "").Body.String()

	t.Run("gzip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
		zr, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, plain, string(body))
	})

	t.Run("zstd", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "gzip, zstd")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		require.Equal(t, "zstd", rec.Header().Get("Content-Encoding"))
		zr, err := zstd.NewReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		defer zr.Close()
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, plain, string(body))
	})

	t.Run("no content", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/sessions/"+st.ID, nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Empty(t, rec.Body.Bytes())
	})
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(time.Minute, 0, nil)
	now := time.Unix(1000, 0)
	st.now = func() time.Time { return now }

	a, err := st.Create(1)
	require.NoError(t, err)
	b, err := st.Create(2)
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	_, err = st.Get(b.ID)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = st.Get(a.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, 1, st.Len())
	_, err = st.Get(b.ID)
	assert.NoError(t, err)
}

func TestStoreFullSweepsBeforeRejecting(t *testing.T) {
	st := NewStore(time.Minute, 1, nil)
	now := time.Unix(0, 0)
	st.now = func() time.Time { return now }

	_, err := st.Create(1)
	require.NoError(t, err)
	_, err = st.Create(2)
	require.ErrorIs(t, err, ErrTooManySessions)

	now = now.Add(2 * time.Minute)
	_, err = st.Create(3)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Len())
}

func TestSweepInterval(t *testing.T) {
	assert.Zero(t, sweepInterval(0))
	assert.Equal(t, time.Second, sweepInterval(2*time.Second))
	assert.Equal(t, 5*time.Minute, sweepInterval(20*time.Minute))
}
