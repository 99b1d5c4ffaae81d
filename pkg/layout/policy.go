package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/shelfview/pkg/errors"
)

// Mode selects the placement policy.
type Mode int

const (
	ModeShelf Mode = iota
	ModeGrid
	ModePage
)

func (m Mode) String() string {
	switch m {
	case ModeShelf:
		return "shelf"
	case ModeGrid:
		return "grid"
	case ModePage:
		return "page"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses "shelf", "grid" or "page".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shelf", "":
		return ModeShelf, nil
	case "grid":
		return ModeGrid, nil
	case "page":
		return ModePage, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "unknown layout mode %q", s)
}

// Direction is the paging axis.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseDirection parses "vertical" or "horizontal".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown direction %q", s)
}

// Policy is the tagged placement variant. Section applies to grid and page;
// Direction and FitWidth to page only.
type Policy struct {
	Mode      Mode
	Section   int
	Direction Direction
	FitWidth  bool
}

// Shelf lays out every section as wrapped rows.
func Shelf() Policy { return Policy{Mode: ModeShelf} }

// Grid lays out one section in fixed cells.
func Grid(section int) Policy { return Policy{Mode: ModeGrid, Section: section} }

// Page lays out one section one item per page, fitting to the container.
func Page(section int, dir Direction) Policy {
	return Policy{Mode: ModePage, Section: section, Direction: dir, FitWidth: true}
}

func (p Policy) String() string {
	switch p.Mode {
	case ModeGrid:
		return fmt.Sprintf("grid[%d]", p.Section)
	case ModePage:
		return fmt.Sprintf("page[%d,%s]", p.Section, p.Direction)
	}
	return p.Mode.String()
}

// ParsePolicy parses the String form of a policy: "shelf", "grid[2]",
// "page[0,horizontal]". Omitted arguments default to section 0 and
// vertical paging, so "grid" and "page" are accepted too.
func ParsePolicy(s string) (Policy, error) {
	s = strings.TrimSpace(s)
	name, args := s, ""
	if i := strings.IndexByte(s, '['); i >= 0 {
		if !strings.HasSuffix(s, "]") {
			return Policy{}, errors.New(errors.ErrCodeInvalidMode, "malformed layout %q", s)
		}
		name, args = s[:i], s[i+1:len(s)-1]
	}

	mode, err := ParseMode(name)
	if err != nil {
		return Policy{}, err
	}
	var parts []string
	if args != "" {
		parts = strings.Split(args, ",")
	}

	switch mode {
	case ModeShelf:
		if len(parts) > 0 {
			return Policy{}, errors.New(errors.ErrCodeInvalidMode, "shelf takes no arguments: %q", s)
		}
		return Shelf(), nil
	case ModeGrid:
		if len(parts) > 1 {
			return Policy{}, errors.New(errors.ErrCodeInvalidMode, "grid takes one section: %q", s)
		}
		section, err := parseSection(parts)
		if err != nil {
			return Policy{}, err
		}
		return Grid(section), nil
	default:
		if len(parts) > 2 {
			return Policy{}, errors.New(errors.ErrCodeInvalidMode, "page takes a section and a direction: %q", s)
		}
		section, err := parseSection(parts)
		if err != nil {
			return Policy{}, err
		}
		dir := Vertical
		if len(parts) == 2 {
			if dir, err = ParseDirection(parts[1]); err != nil {
				return Policy{}, err
			}
		}
		return Page(section, dir), nil
	}
}

func parseSection(parts []string) (int, error) {
	if len(parts) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidMode, "invalid section %q", parts[0])
	}
	return n, nil
}
