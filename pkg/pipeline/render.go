package pipeline

import (
	"fmt"

	"github.com/matzehuels/shelfview/pkg/snapshot"
)

// Render encodes snap in every requested format.
func Render(snap *snapshot.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(snap, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(snap *snapshot.Snapshot, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return snapshot.RenderSVG(snap, buildSVGOptions(opts)...), nil
	case FormatJSON:
		return snapshot.RenderJSON(snap)
	}
	return nil, ValidateFormat(format)
}

func buildSVGOptions(opts Options) []snapshot.SVGOption {
	var out []snapshot.SVGOption
	if opts.Hidden {
		out = append(out, snapshot.WithHidden())
	}
	if opts.Labels {
		out = append(out, snapshot.WithLabels())
	}
	return out
}
