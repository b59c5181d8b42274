package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/columnview/pkg/buildinfo"
	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/pipeline"
)

var (
	errNotFoundRoute    = cverr.New(cverr.ErrCodeNotFound, "no such route")
	errMethodNotAllowed = cverr.New(cverr.ErrCodeInvalidInput, "method not allowed")
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      cverr.Code `json:"code"`
	Message   string     `json:"message"`
	RequestID string     `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := cverr.GetCode(err)
	if code == "" {
		code = cverr.ErrCodeInternal
	}
	status := cverr.HTTPStatus(code)
	if errors.Is(err, errMethodNotAllowed) {
		status = http.StatusMethodNotAllowed
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   cverr.UserMessage(err),
		RequestID: chimiddleware.GetReqID(r.Context()),
	}})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.source.List(r.Context())
	if err != nil {
		s.logger.Warn("list graphs failed", "error", err)
		writeError(w, r, sourceError(err))
		return
	}
	if ids == nil {
		ids = []int{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, g, ok := s.loadGraph(w, r)
	if !ok {
		return
	}
	data, err := graph.MarshalGraph(g)
	if err != nil {
		writeError(w, r, cverr.Wrap(cverr.ErrCodeInternal, err, "encode graph %d", id))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	writer, ok := s.source.(Writer)
	if !ok {
		writeError(w, r, errMethodNotAllowed)
		return
	}
	id, err := cverr.ValidateGraphID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	g, err := graph.ReadGraph(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, r, cverr.Wrap(cverr.ErrCodeInvalidInput, err, "invalid graph body"))
		return
	}
	if _, err := graph.ToIndex(g); err != nil {
		writeError(w, r, cverr.Wrap(cverr.ErrCodeInvalidGraph, err, "%v", err))
		return
	}
	if err := writer.Put(r.Context(), id, g); err != nil {
		s.logger.Warn("store graph failed", "graph", id, "error", err)
		writeError(w, r, sourceError(err))
		return
	}
	s.logger.Info("stored graph", "graph", id, "nodes", len(g.Nodes), "edges", len(g.Edges))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLayering(w http.ResponseWriter, r *http.Request) {
	id, res, ok := s.layout(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.View(id, res))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatColumns
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, cverr.Wrap(cverr.ErrCodeInvalidInput, err, "%v", err))
		return
	}

	id, res, ok := s.layout(w, r)
	if !ok {
		return
	}
	data, err := s.runner.Render(r.Context(), id, res, format)
	if err != nil {
		s.logger.Warn("render failed", "graph", id, "format", format, "error", err)
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	_, _ = w.Write(data)
}

func (s *Server) loadGraph(w http.ResponseWriter, r *http.Request) (int, graph.Graph, bool) {
	id, err := cverr.ValidateGraphID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return 0, graph.Graph{}, false
	}
	g, err := s.source.Get(r.Context(), id)
	if err != nil {
		if !cverr.Is(err, cverr.ErrCodeNotFound) {
			s.logger.Warn("fetch graph failed", "graph", id, "error", err)
		}
		writeError(w, r, sourceError(err))
		return 0, graph.Graph{}, false
	}
	return id, g, true
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) (int, *pipeline.Result, bool) {
	id, g, ok := s.loadGraph(w, r)
	if !ok {
		return 0, nil, false
	}
	res, err := s.runner.Layout(r.Context(), g)
	if err != nil {
		writeError(w, r, err)
		return 0, nil, false
	}
	return id, res, true
}

// sourceError keeps NOT_FOUND and INVALID_INPUT from the source; any other
// failure becomes UNAVAILABLE.
func sourceError(err error) error {
	switch cverr.GetCode(err) {
	case cverr.ErrCodeNotFound, cverr.ErrCodeInvalidInput:
		return err
	default:
		return cverr.Wrap(cverr.ErrCodeUnavailable, err, cverr.MsgUnavailable)
	}
}
