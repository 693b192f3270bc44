package server

import (
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// queryParser reads typed query parameters, keeping the first error.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) floatParam(name string, dst *float64) {
	v := p.q.Get(name)
	if v == "" || p.err != nil {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.err = fgerrors.New(fgerrors.ErrCodeInvalidOption, "%s must be a number, got %q", name, v)
		return
	}
	*dst = f
}

func (p *queryParser) intParam(name string, dst *int) {
	v := p.q.Get(name)
	if v == "" || p.err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fgerrors.New(fgerrors.ErrCodeInvalidOption, "%s must be an integer, got %q", name, v)
		return
	}
	*dst = n
}

func (p *queryParser) uintParam(name string, dst *uint64) {
	v := p.q.Get(name)
	if v == "" || p.err != nil {
		return
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.err = fgerrors.New(fgerrors.ErrCodeInvalidOption, "%s must be a non-negative integer, got %q", name, v)
		return
	}
	*dst = n
}

func (p *queryParser) boolParam(name string, dst *bool) {
	v := p.q.Get(name)
	if v == "" || p.err != nil {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.err = fgerrors.New(fgerrors.ErrCodeInvalidOption, "%s must be true or false, got %q", name, v)
		return
	}
	*dst = b
}

func (p *queryParser) stringParam(name string, dst *string) {
	if v := p.q.Get(name); v != "" {
		*dst = v
	}
}

// requestOptions merges the query parameters of r over the server defaults.
// At most one output format is selected: the format parameter, or the first
// default format the backend supports.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults.Clone()
	opts.Formats = nil
	opts.Logger = s.logger

	p := &queryParser{q: r.URL.Query()}
	p.floatParam("width", &opts.Size[0])
	p.floatParam("height", &opts.Size[1])
	p.floatParam("dpi", &opts.DPI)
	p.floatParam("weight_scale", &opts.WeightScale)
	p.floatParam("edge_labels", &opts.EdgeLabels)
	p.stringParam("title", &opts.Title)
	p.stringParam("engine", &opts.Engine)
	p.uintParam("seed", &opts.Seed)
	p.intParam("iterations", &opts.Iterations)
	p.floatParam("k", &opts.K)
	p.stringParam("backend", &opts.Backend)
	p.boolParam("physics", &opts.Physics)
	p.boolParam("refresh", &opts.Refresh)
	if p.err != nil {
		return pipeline.Options{}, p.err
	}

	if f := strings.ToLower(r.URL.Query().Get("format")); f != "" {
		opts.Formats = []string{f}
	} else if f := s.defaultFormat(opts.Backend); f != "" {
		opts.Formats = []string{f}
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// defaultFormat returns the first configured format usable with backend.
// An empty result lets the pipeline pick the backend's own default.
func (s *Server) defaultFormat(backend string) string {
	if backend == "" {
		backend = pipeline.DefaultBackend
	}
	for _, f := range s.defaults.Formats {
		if pipeline.ValidateCombination(backend, f) == nil {
			return f
		}
	}
	return ""
}

// inputFormat picks the body decoder from the Content-Type header, falling
// back to the "input" query parameter and then JSON.
func inputFormat(r *http.Request) string {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			switch mt {
			case "application/toml", "text/toml", "text/x-toml":
				return graph.FormatTOML
			case "application/json", "text/json":
				return graph.FormatJSON
			}
		}
	}
	if f := r.URL.Query().Get("input"); f != "" {
		return strings.ToLower(f)
	}
	return graph.FormatJSON
}

// readData decodes the request body, capped at the configured size.
func (s *Server) readData(w http.ResponseWriter, r *http.Request) (graph.Data, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()
	return graph.ReadData(body, inputFormat(r))
}
