package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/shelfview/pkg/cache"
	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/observability"
	"github.com/matzehuels/shelfview/pkg/scene"
	"github.com/matzehuels/shelfview/pkg/snapshot"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc := scene.New()
	sc.Name = "test"
	sc.Bounds = geometry.Sz(400, 800)
	sc.Sections = []scene.Section{
		{Items: []scene.Item{{Width: 100, Height: 150, Count: 6}}},
		{Items: []scene.Item{{Width: 120, Height: 80}, {Width: 90, Height: 90, Rotation: 0.2}}},
	}
	if err := sc.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	return sc
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	sc := testScene(t)
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		check   func(t *testing.T, o Options)
	}{
		{
			name: "defaults",
			opts: Options{Scene: sc},
			check: func(t *testing.T, o Options) {
				if o.Layout != "shelf" || len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
					t.Errorf("defaults = %q %v", o.Layout, o.Formats)
				}
				if o.IsTransition() {
					t.Error("IsTransition() = true without from")
				}
			},
		},
		{
			name: "normalizes policies",
			opts: Options{Scene: sc, Layout: "grid", From: "page[1,horizontal]", Progress: 1.7},
			check: func(t *testing.T, o Options) {
				if o.Layout != "grid[0]" || o.From != "page[1,horizontal]" {
					t.Errorf("Layout/From = %q/%q", o.Layout, o.From)
				}
				if o.Progress != 1 {
					t.Errorf("Progress = %v, want clamped 1", o.Progress)
				}
				if f, ok := o.FromPolicy(); !ok || f != layout.Page(1, layout.Horizontal) {
					t.Errorf("FromPolicy() = %+v, %v", f, ok)
				}
			},
		},
		{name: "missing scene", opts: Options{}, wantErr: true},
		{name: "bad layout", opts: Options{Scene: sc, Layout: "carousel"}, wantErr: true},
		{name: "same layouts", opts: Options{Scene: sc, Layout: "grid[0]", From: "grid"}, wantErr: true},
		{name: "progress without from", opts: Options{Scene: sc, Progress: 0.5}, wantErr: true},
		{name: "negative width", opts: Options{Scene: sc, Width: -1}, wantErr: true},
		{name: "bad format", opts: Options{Scene: sc, Formats: []string{"pdf"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			err := o.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, o)
			}
			if err == nil {
				if err := o.ValidateAndSetDefaults(); err != nil {
					t.Errorf("second ValidateAndSetDefaults() error = %v", err)
				}
			}
		})
	}
}

func TestComputeSnapshot(t *testing.T) {
	sc := testScene(t)

	shelf, err := ComputeSnapshot(sc, Options{Layout: "shelf"})
	if err != nil {
		t.Fatalf("ComputeSnapshot(shelf) error: %v", err)
	}
	if shelf.Scene != "test" || shelf.ItemCount() != 8 {
		t.Errorf("shelf snapshot = %q with %d items", shelf.Scene, shelf.ItemCount())
	}

	start, err := ComputeSnapshot(sc, Options{Layout: "grid[0]", From: "shelf"})
	if err != nil {
		t.Fatalf("ComputeSnapshot(transition) error: %v", err)
	}
	if start.From != "shelf" || start.Progress == nil || *start.Progress != 0 {
		t.Errorf("transition fields = %q %v", start.From, start.Progress)
	}
	want, _ := shelf.Entry(layout.KindItem, layout.Path(0, 3))
	got, _ := start.Entry(layout.KindItem, layout.Path(0, 3))
	if got.Frame != want.Frame {
		t.Errorf("frame at progress 0 = %v, want source frame %v", got.Frame, want.Frame)
	}

	wide, err := ComputeSnapshot(sc, Options{Layout: "shelf", Width: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if wide.Bounds != geometry.Sz(1000, 800) {
		t.Errorf("Bounds = %v, want width override", wide.Bounds)
	}
	if wide.ContentSize.Height >= shelf.ContentSize.Height {
		t.Errorf("wider container should be shorter: %v vs %v", wide.ContentSize, shelf.ContentSize)
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := Options{Scene: testScene(t), Layout: "page[0]", Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if !strings.HasPrefix(string(first.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing")
	}
	if _, err := snapshot.ParseJSON(first.Artifacts["json"]); err != nil {
		t.Errorf("json artifact invalid: %v", err)
	}
	if first.Stats.Items != 8 || first.Stats.Sections != 2 {
		t.Errorf("Stats = %+v", first.Stats)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if second.SnapshotHash != first.SnapshotHash {
		t.Error("cached snapshot differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}

	opts.Refresh = false
	opts.Labels = true
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Errorf("label change CacheInfo = %+v, want layout hit and render miss", fourth.CacheInfo)
	}
}

func TestRunnerLoadsScenePath(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{ScenePath: "../../examples/scenes/library.toml"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Scene.Name == "" || res.Stats.Items == 0 {
		t.Errorf("loaded scene = %q with %d items", res.Scene.Name, res.Stats.Items)
	}

	_, err = r.Execute(context.Background(), Options{ScenePath: "does-not-exist.toml"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing scene error = %v, want FILE_NOT_FOUND", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnSceneLoad(_ context.Context, _ string, _ int, _ time.Duration, _ error) {
	h.add("load")
}
func (h *recordingHooks) OnLayoutStart(context.Context, string, int) { h.add("layout") }
func (h *recordingHooks) OnRenderStart(context.Context, []string)    { h.add("render") }
func (h *recordingHooks) OnCacheHit(_ context.Context, k string)     { h.add("hit:" + k) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, k string)    { h.add("miss:" + k) }
func (h *recordingHooks) OnCacheSet(_ context.Context, k string, _ int) {
	h.add("set:" + k)
}

func TestRunnerHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Scene: testScene(t)}); err != nil {
		t.Fatal(err)
	}

	want := "load miss:snapshot layout set:snapshot miss:artifact render set:artifact"
	if got := strings.Join(h.events, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}
