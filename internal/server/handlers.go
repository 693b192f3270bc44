package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// Response headers set on successful pipeline requests.
const (
	HeaderRenderID  = "X-Render-ID"
	HeaderCache     = "X-Cache"
	HeaderNodeCount = "X-Node-Count"
	HeaderEdgeCount = "X-Edge-Count"
)

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// handleRender lays out the posted graph and returns one rendered figure.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	logger := s.logger.With("render_id", id)

	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Logger = logger

	d, err := s.readData(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), d, opts)
	if err != nil {
		logger.Warn("render failed", "err", err)
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(format))
	h.Set(HeaderRenderID, id)
	h.Set(HeaderCache, cacheStatus(res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit))
	h.Set(HeaderNodeCount, strconv.Itoa(res.Stats.NodeCount))
	h.Set(HeaderEdgeCount, strconv.Itoa(res.Stats.EdgeCount))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// handleLayout lays out the posted graph and returns the layout JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	logger := s.logger.With("render_id", id)

	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Logger = logger

	d, err := s.readData(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	fig, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), d, opts)
	if err != nil {
		logger.Warn("layout failed", "err", err)
		writeError(w, err)
		return
	}
	l := fig.Export()
	data, err := graph.MarshalLayout(l)
	if err != nil {
		writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(pipeline.FormatJSON))
	h.Set(HeaderRenderID, id)
	h.Set(HeaderCache, cacheStatus(hit))
	h.Set(HeaderNodeCount, strconv.Itoa(len(l.Nodes)))
	h.Set(HeaderEdgeCount, strconv.Itoa(len(l.Edges)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}
