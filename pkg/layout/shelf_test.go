package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

func TestShelfRows(t *testing.T) {
	src := &testSource{sections: [][]Item{items(4, 100, 100)}}
	l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(250, 600)))
	p := l.Prepare()

	want := map[int]geometry.Rect{
		0: geometry.R(0, 0, 100, 100),
		1: geometry.R(100, 0, 100, 100),
		2: geometry.R(0, 140, 100, 100),
		3: geometry.R(100, 140, 100, 100),
	}
	for i, w := range want {
		if got := mustItem(t, p, Path(0, i)).Frame(); got != w {
			t.Errorf("item %d frame = %v, want %v", i, got, w)
		}
	}

	wantHeight := 2*100.0 + DefaultPageSpacing
	if got := p.ContentSize(); got != geometry.Sz(250, wantHeight) {
		t.Errorf("ContentSize() = %v, want 250x%v", got, wantHeight)
	}
}

func TestShelfDefaults(t *testing.T) {
	src := &testSource{sections: [][]Item{items(2, 100, 100), items(1, 300, 150)}}
	l := New(Shelf(), src, WithBounds(geometry.Sz(390, 844)))
	p := l.Prepare()

	h, ok := p.Header(Path(0, 0))
	if !ok {
		t.Fatal("section 0 header missing")
	}
	if got, want := h.Frame(), geometry.R(0, 0, 390, DefaultHeaderHeight); got != want {
		t.Errorf("header frame = %v, want %v", got, want)
	}

	// header 50 + top inset 10, left inset 40
	if got, want := mustItem(t, p, Path(0, 0)).Frame(), geometry.R(40, 60, 100, 100); got != want {
		t.Errorf("item 0.0 frame = %v, want %v", got, want)
	}
	// gap is ItemSpacing.Left + ItemSpacing.Right
	if got := mustItem(t, p, Path(0, 1)).Frame().X; got != 160 {
		t.Errorf("item 0.1 x = %v, want 160", got)
	}

	// section 1 starts after bottom inset 40
	h1, _ := p.Header(Path(1, 0))
	if got := h1.Frame().Y; got != 200 {
		t.Errorf("section 1 header y = %v, want 200", got)
	}

	// longer side capped at MaxDim
	if got := mustItem(t, p, Path(1, 0)).Size; got != geometry.Sz(140, 70) {
		t.Errorf("capped size = %v, want 140x70", got)
	}
}

func TestShelfItemsCenteredOnRow(t *testing.T) {
	src := &testSource{sections: [][]Item{{
		{IdealSize: geometry.Sz(100, 100)},
		{IdealSize: geometry.Sz(100, 40)},
		{IdealSize: geometry.Sz(100, 40), Rotation: math.Pi / 2},
	}}}
	l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(1000, 600)))
	p := l.Prepare()

	if got := mustItem(t, p, Path(0, 1)).Frame(); got != geometry.R(100, 30, 100, 40) {
		t.Errorf("short item frame = %v, want (100,30,100,40)", got)
	}
	// a quarter turn reserves the swapped box
	if got := mustItem(t, p, Path(0, 2)).Frame(); got != geometry.R(200, 0, 40, 100) {
		t.Errorf("rotated item frame = %v, want (200,0,40,100)", got)
	}
}

func TestShelfZIndexAndPhysicalScale(t *testing.T) {
	src := &testSource{sections: [][]Item{{
		{IdealSize: geometry.Sz(50, 50), PhysicalScale: 2},
		{IdealSize: geometry.Sz(50, 50)},
	}}}
	l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(500, 500)))
	p := l.Prepare()

	a := mustItem(t, p, Path(0, 0))
	if a.Size != geometry.Sz(100, 100) {
		t.Errorf("physical scale size = %v, want 100x100", a.Size)
	}
	if a.ZIndex != 2 || mustItem(t, p, Path(0, 1)).ZIndex != 1 {
		t.Errorf("z indexes should count down from the item count")
	}
}

func TestShelfEmptySection(t *testing.T) {
	src := &testSource{sections: [][]Item{nil, items(1, 100, 100)}}
	l := New(Shelf(), src, WithBounds(geometry.Sz(390, 844)))
	p := l.Prepare()

	c, ok := p.Section(0)
	if !ok {
		t.Fatal("empty section should still have a cache")
	}
	if c.Len() != 1 || c.Frame().Height != DefaultHeaderHeight {
		t.Errorf("empty section = %d attrs, frame %v; want header only", c.Len(), c.Frame())
	}
	h1, _ := p.Header(Path(1, 0))
	if h1.Frame().Y != DefaultHeaderHeight {
		t.Errorf("section 1 header y = %v, want %v", h1.Frame().Y, DefaultHeaderHeight)
	}
}

func TestShelfIgnoredItems(t *testing.T) {
	src := &testSource{sections: [][]Item{items(3, 100, 100)}}

	t.Run("first pass", func(t *testing.T) {
		l := New(Shelf(), src,
			WithConfig(flatConfig()),
			WithBounds(geometry.Sz(1000, 600)),
			WithDelegate(Delegate{ShouldIgnore: func(ip IndexPath) bool { return ip.Item == 1 }}),
		)
		p := l.Prepare()

		ignored := mustItem(t, p, Path(0, 1))
		if !ignored.Hidden || ignored.Alpha != 0 {
			t.Errorf("ignored item = %+v, want hidden with alpha 0", ignored)
		}
		// excluded from flow: item 2 takes its slot
		if got := mustItem(t, p, Path(0, 2)).Frame().X; got != 100 {
			t.Errorf("item 2 x = %v, want 100", got)
		}
		c, _ := p.Section(0)
		if len(c.Hidden()) != 1 || len(c.Visible()) != 2 {
			t.Errorf("partition = %d visible, %d hidden", len(c.Visible()), len(c.Hidden()))
		}
	})

	t.Run("keeps previous frame", func(t *testing.T) {
		l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(1000, 600)))
		before := mustItem(t, l.Prepare(), Path(0, 2))

		l.SetDelegate(Delegate{ShouldIgnore: func(ip IndexPath) bool { return ip.Item == 2 }})
		p := l.Prepare()
		after := mustItem(t, p, Path(0, 2))
		if !after.Hidden || after.Center != before.Center {
			t.Errorf("ignored item center = %v, want %v", after.Center, before.Center)
		}
	})
}

func TestShelfDegenerateSizes(t *testing.T) {
	src := &testSource{sections: [][]Item{{
		{IdealSize: geometry.Sz(0, 0)},
		{IdealSize: geometry.Sz(-5, math.NaN()), Rotation: math.NaN()},
	}}}
	l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(100, 100)))
	p := l.Prepare()

	for i := 0; i < 2; i++ {
		a := mustItem(t, p, Path(0, i))
		f := a.Frame()
		if math.IsNaN(f.X) || math.IsNaN(f.Y) || !(a.Size.Width > 0) || a.Rotation != 0 {
			t.Errorf("item %d = %+v, want finite positive placement", i, a)
		}
	}
}

func TestAttributesInRect(t *testing.T) {
	src := &testSource{sections: [][]Item{items(4, 100, 100)}}
	l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(250, 600)))

	tests := []struct {
		name string
		rect geometry.Rect
		want []int
	}{
		{"first row", geometry.R(0, 0, 150, 50), []int{0, 1}},
		{"second row left", geometry.R(0, 150, 50, 10), []int{2}},
		{"gap between rows", geometry.R(0, 110, 250, 20), nil},
		{"everything", geometry.R(0, 0, 250, 240), []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.AttributesInRect(tt.rect)
			if len(got) != len(tt.want) {
				t.Fatalf("AttributesInRect() = %d attrs, want %d", len(got), len(tt.want))
			}
			for i, a := range got {
				if a.IndexPath.Item != tt.want[i] {
					t.Errorf("attr %d = %v, want item %d", i, a.IndexPath, tt.want[i])
				}
			}
		})
	}
}

func TestLayoutStamp(t *testing.T) {
	t.Run("fingerprinted source", func(t *testing.T) {
		src := &testSource{sections: [][]Item{items(2, 100, 100)}}
		l := New(Shelf(), src, WithBounds(geometry.Sz(300, 300)))

		if l.State() != StateStale {
			t.Errorf("State() before Prepare = %v, want stale", l.State())
		}
		p1 := l.Prepare()
		if l.State() != StateValid {
			t.Errorf("State() after Prepare = %v, want valid", l.State())
		}
		if p2 := l.Prepare(); p2 != p1 {
			t.Error("Prepare() with unchanged inputs should reuse the pass")
		}

		src.sections[0][1].IdealSize = geometry.Sz(50, 50)
		if l.State() != StateStale {
			t.Error("changing an item size should make the layout stale")
		}
		p3 := l.Prepare()
		if p3 == p1 || mustItem(t, p3, Path(0, 1)).Size.Width != 50 {
			t.Error("Prepare() should rebuild after a size change")
		}
		if a := mustItem(t, p1, Path(0, 1)); a.Size.Width != 100 {
			t.Error("rebuilding must not modify the old pass")
		}

		src.sections[0] = append(src.sections[0], Item{IdealSize: geometry.Sz(10, 10)})
		if _, ok := l.AttributesForItem(Path(0, 2)); !ok {
			t.Error("new item should be served after a count change")
		}
	})

	t.Run("versioned source", func(t *testing.T) {
		src := &versionedSource{testSource: testSource{sections: [][]Item{items(1, 100, 100)}}}
		l := New(Shelf(), src, WithBounds(geometry.Sz(300, 300)))
		p1 := l.Prepare()

		src.version++
		if l.State() != StateStale {
			t.Error("bumping the version should make the layout stale")
		}
		if l.Prepare() == p1 {
			t.Error("Prepare() should rebuild after a version change")
		}
	})

	t.Run("bounds and invalidate", func(t *testing.T) {
		src := &testSource{sections: [][]Item{items(1, 100, 100)}}
		l := New(Shelf(), src, WithBounds(geometry.Sz(300, 300)))
		p1 := l.Prepare()

		if l.ShouldInvalidateForBounds(geometry.Sz(300, 300)) {
			t.Error("same bounds should not invalidate")
		}
		l.Invalidate()
		p2 := l.Prepare()
		if p2 == p1 {
			t.Error("Invalidate() should force a rebuild")
		}
		l.SetBounds(geometry.Sz(400, 300))
		if l.Prepare() == p2 {
			t.Error("new bounds should force a rebuild")
		}
	})
}

func TestTargetContentOffset(t *testing.T) {
	viewport := geometry.Sz(350, 100)

	t.Run("keeps target stationary", func(t *testing.T) {
		src := &testSource{sections: [][]Item{items(6, 100, 100)}}
		l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(250, 100)))
		target := Path(0, 4)
		l.TargetIndexPath = &target

		if y := mustItem(t, l.Prepare(), target).Frame().Y; y != 280 {
			t.Fatalf("target y = %v, want 280", y)
		}
		l.SetBounds(geometry.Sz(350, 100))

		got := l.TargetContentOffset(geometry.Pt(0, 280), viewport)
		if got != geometry.Pt(0, 140) {
			t.Errorf("TargetContentOffset() = %v, want (0,140)", got)
		}
		// the shift applies once per re-layout
		if again := l.TargetContentOffset(got, viewport); again != got {
			t.Errorf("TargetContentOffset() without re-layout = %v, want %v", again, got)
		}
	})

	t.Run("first layout", func(t *testing.T) {
		src := &testSource{sections: [][]Item{items(6, 100, 100)}}
		l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(250, 100)))
		target := Path(0, 4)
		l.TargetIndexPath = &target

		// section is 380 tall: 0 - (100-380)/5
		if got := l.TargetContentOffset(geometry.Point{}, viewport); got != geometry.Pt(0, 56) {
			t.Errorf("TargetContentOffset() = %v, want (0,56)", got)
		}
		if got := l.TargetContentOffset(geometry.Pt(0, 10), viewport); got != geometry.Pt(0, 10) {
			t.Errorf("TargetContentOffset() after first layout = %v, want (0,10)", got)
		}
	})

	t.Run("no target clamps", func(t *testing.T) {
		src := &testSource{sections: [][]Item{items(6, 100, 100)}}
		l := New(Shelf(), src, WithConfig(flatConfig()), WithBounds(geometry.Sz(250, 100)))

		if got := l.TargetContentOffset(geometry.Pt(-20, 9000), viewport); got != geometry.Pt(0, 280) {
			t.Errorf("TargetContentOffset() = %v, want (0,280)", got)
		}
	})
}

// countingSource counts Item calls.
type countingSource struct {
	testSource
	calls int
}

func (s *countingSource) Item(ip IndexPath) Item {
	s.calls++
	return s.testSource.Item(ip)
}

func TestItemLookupsStayLinear(t *testing.T) {
	const n = 50
	src := &countingSource{testSource: testSource{sections: [][]Item{items(n, 100, 100)}}}
	l := New(Shelf(), src, WithBounds(geometry.Sz(300, 300)))
	l.Prepare()

	src.calls = 0
	for i := 0; i < n; i++ {
		if _, ok := l.AttributesForItem(Path(0, i)); !ok {
			t.Fatalf("item %d missing", i)
		}
	}
	if src.calls != 0 {
		t.Errorf("per-item lookups read the source %d times, want 0", src.calls)
	}

	// a full query still notices size changes
	src.sections[0][3].IdealSize = geometry.Sz(40, 40)
	if l.State() != StateStale {
		t.Error("State() should see the size change")
	}
	if a, _ := l.AttributesForItem(Path(0, 3)); a.Size.Width == 40 {
		t.Error("per-item lookup should not rebuild on a size change alone")
	}
	if a := mustItem(t, l.Prepare(), Path(0, 3)); a.Size.Width != 40 {
		t.Errorf("Prepare() size = %v, want width 40", a.Size)
	}
}
