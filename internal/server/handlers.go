package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/gesture"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/pipeline"
	"github.com/matzehuels/shelfview/pkg/scene"
	"github.com/matzehuels/shelfview/pkg/snapshot"
	"github.com/matzehuels/shelfview/pkg/transition"
)

type sessionView struct {
	ID            string          `json:"id"`
	Scene         string          `json:"scene,omitempty"`
	State         string          `json:"state"`
	Layout        string          `json:"layout"`
	From          string          `json:"from,omitempty"`
	Progress      float64         `json:"progress"`
	ContentSize   geometry.Size   `json:"content_size"`
	ContentOffset *geometry.Point `json:"content_offset,omitempty"`
	Anchor        *anchorView     `json:"anchor,omitempty"`
	Items         int             `json:"items"`
	ExpiresAt     time.Time       `json:"expires_at"`
}

type anchorView struct {
	Section int            `json:"section"`
	Item    int            `json:"item"`
	Percent geometry.Point `json:"percent"`
	Focal   geometry.Point `json:"focal"`
}

func viewOf(sess *Session, e *transition.Engine) sessionView {
	v := sessionView{
		ID:          sess.ID,
		Scene:       sess.Scene.Name,
		State:       e.State().String(),
		Layout:      e.CurrentLayout().Policy().String(),
		Progress:    e.Progress(),
		ContentSize: e.ContentSize(),
		Items:       sess.Scene.ItemCount(),
		ExpiresAt:   sess.ExpiresAt,
	}
	if src, ok := e.Source(); ok {
		v.From = src.Policy().String()
	}
	if off, ok := e.ContentOffset(); ok {
		v.ContentOffset = &off
	}
	if a, ok := e.Anchor(); ok && a.Found {
		v.Anchor = &anchorView{Section: a.IndexPath.Section, Item: a.IndexPath.Item, Percent: a.Percent, Focal: a.Focal}
	}
	return v
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// session resolves {id} and runs fn under the session lock, answering with
// the resulting view.
func (s *Server) session(w http.ResponseWriter, r *http.Request, fn func(sess *Session, e *transition.Engine) (any, error)) {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var out any
	err = sess.Do(func(e *transition.Engine) error {
		var err error
		out, err = fn(sess, e)
		if err == nil && out == nil {
			out = viewOf(sess, e)
		}
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// Session lifecycle
// =============================================================================

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	format := scene.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = scene.FormatTOML
	}
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := scene.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}

	policy, err := layout.ParsePolicy(r.URL.Query().Get("layout"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sc, err := scene.Read(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := s.store.Create(sc, policy)
	var view sessionView
	_ = sess.Do(func(e *transition.Engine) error {
		view = viewOf(sess, e)
		return nil
	})
	s.logger.Info("session created", "id", sess.ID, "scene", sc.Name, "items", sc.ItemCount(), "layout", policy)
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.session(w, r, func(*Session, *transition.Engine) (any, error) { return nil, nil })
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Queries
// =============================================================================

type attributesResponse struct {
	Progress float64          `json:"progress"`
	Entries  []snapshot.Entry `json:"entries"`
}

func (s *Server) handleAttributes(w http.ResponseWriter, r *http.Request) {
	rect, ok, err := parseRect(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.session(w, r, func(_ *Session, e *transition.Engine) (any, error) {
		attrs := e.AllAttributes()
		if ok {
			attrs = e.AttributesInRect(rect)
		}
		return attributesResponse{Progress: e.Progress(), Entries: snapshot.Entries(attrs)}, nil
	})
}

// parseRect reads x, y, w and h. Either all four are given or none.
func parseRect(r *http.Request) (geometry.Rect, bool, error) {
	q := r.URL.Query()
	keys := []string{"x", "y", "w", "h"}
	vals := make([]float64, len(keys))
	given := 0
	for i, k := range keys {
		raw := q.Get(k)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return geometry.Rect{}, false, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", k, raw)
		}
		if err := errors.ValidateFinite(k, v); err != nil {
			return geometry.Rect{}, false, err
		}
		vals[i] = v
		given++
	}
	switch given {
	case 0:
		return geometry.Rect{}, false, nil
	case len(keys):
		return geometry.R(vals[0], vals[1], vals[2], vals[3]), true, nil
	}
	return geometry.Rect{}, false, errors.New(errors.ErrCodeInvalidInput, "x, y, w and h must be given together")
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	opts := pipeline.Options{
		Formats: []string{format},
		Hidden:  q.Get("hidden") == "true",
		Labels:  q.Get("labels") == "true",
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var out []byte
	err = sess.Do(func(e *transition.Engine) error {
		snap := snapshot.FromEngine(e)
		snap.Scene = sess.Scene.Name
		artifacts, err := pipeline.Render(snap, opts)
		out = artifacts[format]
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := "application/json"
	if format == pipeline.FormatSVG {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// =============================================================================
// Layout switches and transitions
// =============================================================================

// layoutRequest names a layout either as a policy string ("grid[1]") or
// by its parts.
type layoutRequest struct {
	Layout    string          `json:"layout,omitempty"`
	Mode      string          `json:"mode,omitempty"`
	Section   int             `json:"section,omitempty"`
	Direction string          `json:"direction,omitempty"`
	Focal     *geometry.Point `json:"focal,omitempty"`
	Viewport  *geometry.Rect  `json:"viewport,omitempty"`
}

func (req layoutRequest) policy() (layout.Policy, error) {
	if req.Layout != "" || req.Mode == "" {
		return layout.ParsePolicy(req.Layout)
	}
	switch req.Mode {
	case "grid":
		return layout.ParsePolicy(fmt.Sprintf("grid[%d]", req.Section))
	case "page":
		dir := req.Direction
		if dir == "" {
			dir = layout.Vertical.String()
		}
		return layout.ParsePolicy(fmt.Sprintf("page[%d,%s]", req.Section, dir))
	}
	return layout.ParsePolicy(req.Mode)
}

type beginResponse struct {
	sessionView
	Found bool `json:"anchor_found"`
}

func (s *Server) handleSetLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := req.policy()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.session(w, r, func(sess *Session, e *transition.Engine) (any, error) {
		return nil, e.SetLayout(sess.layoutFor(p))
	})
}

func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := req.policy()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.session(w, r, func(sess *Session, e *transition.Engine) (any, error) {
		opts := transition.BeginOptions{Focal: req.Focal}
		if req.Viewport != nil {
			opts.Viewport = *req.Viewport
		}
		a, err := e.Begin(sess.layoutFor(p), opts)
		if err != nil {
			return nil, err
		}
		return beginResponse{sessionView: viewOf(sess, e), Found: a.Found}, nil
	})
}

type progressRequest struct {
	Progress *float64 `json:"progress,omitempty"`
	Scale    *float64 `json:"scale,omitempty"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if (req.Progress == nil) == (req.Scale == nil) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "exactly one of progress or scale is required"))
		return
	}
	for name, v := range map[string]*float64{"progress": req.Progress, "scale": req.Scale} {
		if v != nil {
			if err := errors.ValidateFinite(name, *v); err != nil {
				s.writeError(w, r, err)
				return
			}
		}
	}

	s.session(w, r, func(_ *Session, e *transition.Engine) (any, error) {
		if e.State() != transition.StateInteractive {
			return nil, errors.New(errors.ErrCodeNoTransition, "no transition in progress")
		}
		if req.Scale != nil {
			e.UpdateGesture(gesture.Sample{Scale: *req.Scale})
		} else {
			e.SetProgress(*req.Progress)
		}
		return nil, nil
	})
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	s.session(w, r, func(_ *Session, e *transition.Engine) (any, error) {
		if !e.Finish() {
			return nil, errors.New(errors.ErrCodeNoTransition, "no transition to finish")
		}
		return nil, nil
	})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.session(w, r, func(_ *Session, e *transition.Engine) (any, error) {
		if !e.Cancel() {
			return nil, errors.New(errors.ErrCodeNoTransition, "no transition to cancel")
		}
		return nil, nil
	})
}

type releaseRequest struct {
	Scale    float64 `json:"scale"`
	Velocity float64 `json:"velocity"`
}

type releaseResponse struct {
	sessionView
	Committed bool `json:"committed"`
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	var req releaseRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateFinite("scale", req.Scale); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateFinite("velocity", req.Velocity); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.session(w, r, func(sess *Session, e *transition.Engine) (any, error) {
		if e.State() != transition.StateInteractive {
			return nil, errors.New(errors.ErrCodeNoTransition, "no transition to release")
		}
		committed := e.EndGesture(gesture.Sample{Scale: req.Scale, Velocity: req.Velocity})
		return releaseResponse{sessionView: viewOf(sess, e), Committed: committed}, nil
	})
}

// =============================================================================
// Stateless rendering
// =============================================================================

type renderRequest struct {
	Scene   json.RawMessage  `json:"scene"`
	Options pipeline.Options `json:"options"`
}

type renderResponse struct {
	SceneHash    string             `json:"scene_hash"`
	SnapshotHash string             `json:"snapshot_hash"`
	CacheInfo    pipeline.CacheInfo `json:"cache_info"`
	Artifacts    map[string]string  `json:"artifacts"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Scene) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scene is required"))
		return
	}
	sc, err := scene.Parse(req.Scene, scene.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := req.Options
	opts.Scene = sc
	opts.ScenePath = ""
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := renderResponse{
		SceneHash:    res.SceneHash,
		SnapshotHash: res.SnapshotHash,
		CacheInfo:    res.CacheInfo,
		Artifacts:    make(map[string]string, len(res.Artifacts)),
	}
	for format, data := range res.Artifacts {
		out.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, out)
}
