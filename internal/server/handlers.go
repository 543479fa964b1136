package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/siteoverview/pkg/buildinfo"
	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/pipeline"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// Response headers set by the overview endpoint.
const (
	HeaderCache  = "X-Cache"
	HeaderLayout = "X-Layout"
)

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type siteResponse struct {
	sites.Site
	State sites.State `json:"state"`
}

type sitesResponse struct {
	Title      string         `json:"title,omitempty"`
	RenderMode string         `json:"render_mode"`
	Hash       string         `json:"hash"`
	Counts     map[string]int `json:"counts"`
	Sites      []siteResponse `json:"sites"`
}

type placementResponse struct {
	Index   int          `json:"index"`
	Box     layout.Rect  `json:"box"`
	Hexagon layout.Point `json:"hexagon"`
	Label   layout.Point `json:"label"`
}

type layoutResponse struct {
	Cached     bool                `json:"cached"`
	Geometry   layout.Geometry     `json:"geometry"`
	Placements []placementResponse `json:"placements"`
}

type hitResponse struct {
	Hit   bool         `json:"hit"`
	ID    string       `json:"id,omitempty"`
	Label string       `json:"label,omitempty"`
	URL   string       `json:"url,omitempty"`
	Box   *layout.Rect `json:"box,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ov, err := s.load(r, opts)
	if err != nil {
		writeError(w, sourceError(err))
		return
	}

	resp := sitesResponse{
		Title:      ov.Title,
		RenderMode: ov.Mode(),
		Hash:       sites.Hash(ov),
		Counts:     make(map[string]int),
		Sites:      make([]siteResponse, 0, len(ov.Sites)),
	}
	for state, n := range ov.Counts() {
		resp.Counts[string(state)] = n
	}
	for _, site := range ov.Sites {
		resp.Sites = append(resp.Sites, siteResponse{Site: site, State: site.State()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, ok, err := queryInt(r, "items")
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		ov, err := s.load(r, opts)
		if err != nil {
			writeError(w, sourceError(err))
			return
		}
		items = ov.Items()
	}

	g, hit, err := s.opts.Runner.LayoutWithCacheInfo(r.Context(), items, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := layoutResponse{Cached: hit, Geometry: g, Placements: make([]placementResponse, g.Items)}
	for i := range resp.Placements {
		resp.Placements[i] = placementResponse{
			Index:   i,
			Box:     g.Box(i),
			Hexagon: g.HexagonAt(i),
			Label:   g.LabelAt(i),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.opts.Runner.Execute(r.Context(), s.opts.Source, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set(HeaderCache, cacheStatus(result.CacheInfo.RenderHit))
	if result.Infeasible != nil {
		w.Header().Set(HeaderLayout, "infeasible")
	} else {
		w.Header().Set(HeaderLayout, strconv.Itoa(result.Geometry.Columns)+"x"+strconv.Itoa(result.Geometry.Rows))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	x, okX, err := queryFloat(r, "x")
	if err != nil {
		writeError(w, err)
		return
	}
	y, okY, err := queryFloat(r, "y")
	if err != nil {
		writeError(w, err)
		return
	}
	if !okX || !okY {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "x and y are required"))
		return
	}

	ov, err := s.load(r, opts)
	if err != nil {
		writeError(w, sourceError(err))
		return
	}
	g, _, err := s.opts.Runner.LayoutWithCacheInfo(r.Context(), ov.Items(), opts)
	if err != nil {
		if pipeline.IsInfeasible(err) {
			writeJSON(w, http.StatusOK, hitResponse{})
			return
		}
		writeError(w, err)
		return
	}

	scene := pipeline.BuildScene(ov, &g, opts)
	m, ok := scene.MarkerAt(layout.Point{X: x, Y: y})
	if !ok {
		writeJSON(w, http.StatusOK, hitResponse{})
		return
	}
	writeJSON(w, http.StatusOK, hitResponse{Hit: true, ID: m.ID, Label: m.Label, URL: m.URL, Box: &m.Box})
}

// requestOptions applies the width, height and refresh query parameters to
// the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.opts.Defaults.Clone()
	if v, ok, err := queryFloat(r, "width"); err != nil {
		return opts, err
	} else if ok {
		opts.Width = v
	}
	if v, ok, err := queryFloat(r, "height"); err != nil {
		return opts, err
	} else if ok {
		opts.Height = v
	}
	if raw := r.URL.Query().Get("refresh"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh: %q is not a boolean", raw)
		}
		opts.Refresh = v
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func queryFloat(r *http.Request, name string) (float64, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, raw)
	}
	return v, true, nil
}

func queryInt(r *http.Request, name string) (int, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a non-negative integer", name, raw)
	}
	return v, true, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// sourceError tags uncoded load failures as SOURCE_UNAVAILABLE.
// load returns the configured source's overview through the runner cache.
func (s *Server) load(r *http.Request, opts pipeline.Options) (sites.Overview, error) {
	ov, _, err := s.opts.Runner.LoadWithCacheInfo(r.Context(), s.opts.Source, opts)
	return ov, err
}

func sourceError(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeSourceUnavailable, err, "load overview")
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if code == errors.ErrCodeInternal {
		msg = "internal error"
	}
	writeJSON(w, errors.HTTPStatus(code), errorResponse{Code: code, Message: msg})
}
