package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/shelfview/pkg/snapshot"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"json", []string{"json"}},
		{"svg,json", []string{"svg", "json"}},
		{" svg , json ,", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		input, output, want string
	}{
		{"scenes/library.toml", "", "scenes/library"},
		{"scenes/library.toml", "out/lib", "out/lib"},
		{"scenes/library.toml", "out/lib.svg", "out/lib"},
		{"strip.json", "", "strip"},
	}
	for _, tt := range tests {
		if got := outputBase(tt.input, tt.output); got != tt.want {
			t.Errorf("outputBase(%q, %q) = %q, want %q", tt.input, tt.output, got, tt.want)
		}
	}
}

func TestFrameProgress(t *testing.T) {
	got := frameProgress(5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("frameProgress(5) = %v, want %v", got, want)
	}
	if got := frameProgress(2); !reflect.DeepEqual(got, []float64{0, 1}) {
		t.Errorf("frameProgress(2) = %v", got)
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out")
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(base, []string{"json", "svg", "pdf"}, artifacts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{base + ".json", base + ".svg"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	if data, _ := os.ReadFile(base + ".svg"); string(data) != "<svg/>" {
		t.Errorf("svg content = %q", data)
	}
}

// copyScene copies an example scene into a temp dir so outputs land there.
func copyScene(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "examples", "scenes", name))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisAddr, "")
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestLayoutCommand(t *testing.T) {
	path := copyScene(t, "library.toml")
	base := strings.TrimSuffix(path, ".toml")

	if err := execute(t, "layout", path, "-l", "grid[0]", "-f", "svg,json", "--labels"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output = %q, %v", svg, err)
	}
	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	snap, err := snapshot.ParseJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Layout != "grid[0]" || snap.From != "" {
		t.Errorf("snapshot layout = %q from %q", snap.Layout, snap.From)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	path := copyScene(t, "strip.json")
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"layout", filepath.Join(t.TempDir(), "nope.toml")}},
		{"bad layout", []string{"layout", path, "-l", "carousel"}},
		{"bad format", []string{"layout", path, "-f", "gif"}},
		{"progress without from", []string{"layout", path, "--progress", "0.5"}},
		{"no args", []string{"layout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}

func TestTransitionCommand(t *testing.T) {
	path := copyScene(t, "strip.json")
	out := filepath.Join(t.TempDir(), "frames")

	if err := execute(t, "transition", path, "--from", "shelf", "-l", "page[0,horizontal]", "-n", "3", "-f", "json", "-o", out); err != nil {
		t.Fatalf("transition: %v", err)
	}
	for i, want := range []float64{0, 0.5, 1} {
		data, err := os.ReadFile(out + "." + []string{"000", "001", "002"}[i] + ".json")
		if err != nil {
			t.Fatal(err)
		}
		snap, err := snapshot.ParseJSON(data)
		if err != nil {
			t.Fatal(err)
		}
		if snap.Progress == nil || *snap.Progress != want {
			t.Errorf("frame %d progress = %v, want %v", i, snap.Progress, want)
		}
	}

	if err := execute(t, "transition", path, "-n", "1"); err == nil {
		t.Error("a single frame should be rejected")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"completion", "tcsh"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("completion tcsh: expected error")
	}
}
