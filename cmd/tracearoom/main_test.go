package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/tracearoom/internal/config"
)

// run executes the root command with args in an isolated config home.
func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestRenderWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "room.png")
	run(t, "render", "-o", out, "--width", "32", "--height", "24", "-j", "2")

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty image")
	}
}

func TestOrbitWritesGIF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "spin.gif")
	run(t, "orbit", "-o", out, "--width", "16", "--height", "12", "--frames", "3", "--axis", "0,1,0")

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("GIF89a")) {
		t.Errorf("header = %q", data[:6])
	}
}

func TestConfigPrints(t *testing.T) {
	yamlOut := run(t, "config", "--width", "100")
	if !strings.Contains(yamlOut, "width: 100") {
		t.Errorf("yaml output missing override:\n%s", yamlOut)
	}

	tomlOut := run(t, "config", "--toml")
	if !strings.Contains(tomlOut, "[render]") {
		t.Errorf("toml output missing render table:\n%s", tomlOut)
	}
}

func TestPreviewOnce(t *testing.T) {
	out := run(t, "preview", "--once", "--width", "64", "--height", "64")
	if !strings.Contains(out, "▀") {
		t.Errorf("preview has no half blocks:\n%s", out)
	}
}

func TestParseVec(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]float64
		wantErr bool
	}{
		{"0,1,0", [3]float64{0, 1, 0}, false},
		{" 1.5, -2 ,3", [3]float64{1.5, -2, 3}, false},
		{"1,2", [3]float64{}, true},
		{"a,b,c", [3]float64{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseVec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && [3]float64(got) != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatchedFiles(t *testing.T) {
	cfg := config.Default()
	cfg.Meshes = append(cfg.Meshes,
		config.MeshConfig{Kind: config.KindGLTF, Path: "props/chair.glb"},
		config.MeshConfig{Kind: config.KindGLTF, Path: "/abs/table.glb"},
	)
	a := &app{configPath: filepath.Join("scenes", "room.yaml"), cfg: cfg}

	got := a.watchedFiles()
	want := []string{
		filepath.Join("scenes", "room.yaml"),
		filepath.Join("scenes", "props", "chair.glb"),
		"/abs/table.glb",
	}
	if len(got) != len(want) {
		t.Fatalf("watchedFiles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("watchedFiles[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
