package host

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/platform/headless"
	"github.com/vovakirdan/comfy-wars/internal/unitgen"
)

// buildUnits builds the game twice as a plugin. The second build only
// changes the HUD separator, so the two can be told apart on screen.
func buildUnits(t *testing.T) (v1, v2 string) {
	t.Helper()
	if testing.Short() {
		t.Skip("builds plugins")
	}
	if testing.CoverMode() != "" {
		t.Skip("coverage instrumentation makes the host's packages differ from the plugin's")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not found")
	}
	out, err := exec.Command("go", "env", "CGO_ENABLED", "GOMOD").Output()
	if err != nil {
		t.Skipf("go env: %v", err)
	}
	env := strings.Fields(string(out))
	if len(env) != 2 || env[0] != "1" {
		t.Skip("plugins need cgo")
	}
	root := filepath.Dir(env[1])

	// The sources must live inside the module to import its internal
	// packages. A leading underscore keeps ./... patterns away from them.
	work, err := os.MkdirTemp(root, "_unitgen")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(work) })

	var flags []string
	if raceEnabled {
		flags = append(flags, "-race")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	artifacts := t.TempDir()
	build := func(name, from, to string) string {
		dir := filepath.Join(work, name)
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if _, err := unitgen.Generate(filepath.Join(root, "internal", "game"), dir); err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if from != "" {
			f := filepath.Join(dir, unitgen.Prefix+"update.go")
			src, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(src), from) {
				t.Fatalf("%s does not contain %q", f, from)
			}
			if err := os.WriteFile(f, []byte(strings.Replace(string(src), from, to, 1)), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		so := filepath.Join(artifacts, name+".so")
		if err := unitgen.Build(ctx, dir, so, flags...); err != nil {
			t.Fatalf("Build %s: %v", name, err)
		}
		return so
	}
	return build("v1", "", ""), build("v2", `" turn: "`, `" turn > "`)
}

func copyArtifact(t *testing.T, src, dst string) {
	t.Helper()
	b, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, b, 0o755); err != nil {
		t.Fatal(err)
	}
}

// hudFrame runs one frame with the pointer on p and returns the status line.
func hudFrame(t *testing.T, h *Host, ctx *headless.Context, p core.Pos, buttons ...core.Button) string {
	t.Helper()
	ctx.PointAt(p)
	ctx.Press(buttons...)
	h.InvokeFrame(ctx)
	ctx.EndFrame()
	if h.Faults() != 0 {
		t.Fatalf("unit faulted: %s", h.LastFault())
	}
	for _, c := range ctx.Commands() {
		if c.Kind == headless.KindText && strings.Contains(c.Text, " turn") {
			return c.Text
		}
	}
	t.Fatal("no status line drawn")
	return ""
}

func TestPluginReloadKeepsPlaying(t *testing.T) {
	v1, v2 := buildUnits(t)

	dir := t.TempDir()
	artifact := filepath.Join(dir, "worker.so")
	copyArtifact(t, v1, artifact)

	h, err := New(&PluginLoader{ShadowDir: filepath.Join(dir, "shadow")}, artifact,
		WithWatch(false), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Close()

	// Red infantry stands on (2,7).
	ctx := headless.New(1.0 / 60)
	if got := hudFrame(t, h, ctx, core.P(2, 7), core.MouseLeft); !strings.HasPrefix(got, "red turn: click a destination") {
		t.Fatalf("v1 after select: %q", got)
	}

	copyArtifact(t, v2, artifact)
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload to a changed build: %v", err)
	}
	if h.Reloads() != 1 {
		t.Errorf("Reloads() = %d, want 1", h.Reloads())
	}

	// The selection made by v1 drives v2.
	if got := hudFrame(t, h, ctx, core.P(3, 7)); !strings.HasPrefix(got, "red turn > click a destination") {
		t.Fatalf("v2 after reload: %q", got)
	}
	hudFrame(t, h, ctx, core.P(3, 7), core.MouseLeft)
	got := ""
	for i := 0; i < 120 && !strings.Contains(got, "confirm"); i++ {
		got = hudFrame(t, h, ctx, core.P(3, 7))
	}
	if got != "red turn > enter to confirm" {
		t.Fatalf("v2 move did not finish: %q", got)
	}
	if got := hudFrame(t, h, ctx, core.P(3, 7), core.ButtonConfirm); !strings.HasPrefix(got, "red turn > click a unit") {
		t.Errorf("after confirm: %q", got)
	}
	if got := hudFrame(t, h, ctx, core.P(3, 7), core.ButtonEndTurn); !strings.HasPrefix(got, "blue turn > click a unit") {
		t.Errorf("after end turn: %q", got)
	}

	// A second host on the same artifact shares the code, not the state.
	h2, err := New(&PluginLoader{ShadowDir: filepath.Join(dir, "shadow")}, artifact,
		WithWatch(false), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("second New on the same artifact: %v", err)
	}
	defer h2.Close()
	if got := hudFrame(t, h2, headless.New(1.0/60), core.P(0, 0)); !strings.HasPrefix(got, "red turn > click a unit") {
		t.Errorf("second host: %q", got)
	}

	// Reloading an unchanged artifact is not an error either.
	if err := h2.Reload(); err != nil {
		t.Errorf("Reload of the same build: %v", err)
	}
}
