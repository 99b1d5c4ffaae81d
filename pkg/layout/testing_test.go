package layout

import (
	"testing"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// testSource is an in-memory DataSource.
type testSource struct {
	sections [][]Item
}

func (s *testSource) NumberOfSections() int { return len(s.sections) }

func (s *testSource) NumberOfItems(section int) int {
	if section < 0 || section >= len(s.sections) {
		return 0
	}
	return len(s.sections[section])
}

func (s *testSource) Item(ip IndexPath) Item { return s.sections[ip.Section][ip.Item] }

// versionedSource reports an explicit version instead of being fingerprinted.
type versionedSource struct {
	testSource
	version uint64
}

func (s *versionedSource) Version() uint64 { return s.version }

func items(n int, w, h float64) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = Item{IdealSize: geometry.Sz(w, h)}
	}
	return out
}

// flatConfig has no headers, insets or item spacing.
func flatConfig() Config {
	cfg := DefaultConfig()
	cfg.HeaderHeight = 0
	cfg.SectionInsets = geometry.Insets{}
	cfg.ItemSpacing = geometry.Insets{}
	return cfg
}

func mustItem(t *testing.T, p *Pass, ip IndexPath) Attributes {
	t.Helper()
	a, ok := p.Item(ip)
	if !ok {
		t.Fatalf("Item(%v) not found", ip)
	}
	return a
}
