package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
)

// State is the JSON view of a session.
type State struct {
	ID       string `json:"id"`
	Seed     int64  `json:"seed"`
	Score    int    `json:"score"`
	GameOver bool   `json:"game_over"`
	Lines    int    `json:"lines"`
	Pieces   int    `json:"pieces"`
	Current  string `json:"current"`
	Next     string `json:"next"`
}

type createRequest struct {
	Seed *int64 `json:"seed"`
}

type keyRequest struct {
	Key     string `json:"key"`
	Pressed *bool  `json:"pressed"` // Defaults to true
}

type keyResponse struct {
	Handled bool `json:"handled"`
}

type updateRequest struct {
	Elapsed float64 `json:"elapsed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var errBadRequest = errors.New("bad request")

func stateOf(s *Session, e *blocks.Engine) State {
	st := e.Stats()
	return State{
		ID:       s.ID,
		Seed:     s.Seed,
		Score:    e.Score(),
		GameOver: e.GameOver(),
		Lines:    st.RowsCleared,
		Pieces:   st.PiecesLocked,
		Current:  e.Current().Shape().String(),
		Next:     e.Next().Shape().String(),
	}
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	sess, err := s.store.Create(seed)
	if err != nil {
		writeError(w, err)
		return
	}
	var st State
	sess.Do(func(e *blocks.Engine) { st = stateOf(sess, e) })

	w.Header().Set("Location", "/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var st State
	sess.Do(func(e *blocks.Engine) { st = stateOf(sess, e) })
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req keyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	key, known := blocks.ParseKey(req.Key)
	if !known {
		writeError(w, fmt.Errorf("%w: unknown key %q", errBadRequest, req.Key))
		return
	}
	pressed := req.Pressed == nil || *req.Pressed

	var handled bool
	sess.Do(func(e *blocks.Engine) { handled = e.HandleKey(key, pressed) })
	writeJSON(w, http.StatusOK, keyResponse{Handled: handled})
}

func (s *Server) postUpdate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if math.IsNaN(req.Elapsed) || math.IsInf(req.Elapsed, 0) || req.Elapsed < 0 {
		writeError(w, fmt.Errorf("%w: elapsed must be a finite non-negative number of seconds", errBadRequest))
		return
	}

	var st State
	sess.Do(func(e *blocks.Engine) {
		e.Update(req.Elapsed)
		st = stateOf(sess, e)
	})
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) getFrame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body []byte
	sess.Do(func(e *blocks.Engine) {
		frame := e.Render()
		body = blocks.AppendVertices(make([]byte, 0, len(frame)*blocks.VertexStride), frame)
	})

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Vertex-Count", strconv.Itoa(len(body)/blocks.VertexStride))
	w.Header().Set("X-Vertex-Stride", strconv.Itoa(blocks.VertexStride))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var board string
	sess.Do(func(e *blocks.Engine) { board = e.Board().String() })

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, board)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return sess, true
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusCode(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
