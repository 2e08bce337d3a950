package main

import (
	"context"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/gooey/motion"
)

func TestParseToggles(t *testing.T) {
	got, err := parseToggles(" 2.5, 0.5 ,1")
	if err != nil {
		t.Fatalf("parseToggles: %v", err)
	}
	want := []float64{0.5, 1, 2.5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if got, err := parseToggles(""); err != nil || got != nil {
		t.Errorf("empty = %v, %v", got, err)
	}
	for _, bad := range []string{"x", "1,,2", "-1", "NaN"} {
		if _, err := parseToggles(bad); err == nil {
			t.Errorf("parseToggles(%q) accepted", bad)
		}
	}
}

func TestFrameTimes(t *testing.T) {
	times := frameTimes(1, 30)
	if len(times) != 30 {
		t.Fatalf("len = %d, want 30", len(times))
	}
	if times[0] != 0 || math.Abs(times[29]-29.0/30) > 1e-12 {
		t.Errorf("times = %v .. %v", times[0], times[29])
	}
	if frameTimes(0, 30) != nil || frameTimes(1, 0) != nil {
		t.Error("expected no frames")
	}
}

func TestTimelineToggles(t *testing.T) {
	l := motion.DefaultLayout()
	tl := newTimeline(motion.NewState(l, motion.DefaultTuning()), []float64{0.5, 5.5})

	tl.advanceTo(0.25)
	if tl.active {
		t.Fatal("active before the first toggle")
	}
	tl.advanceTo(5)
	if !tl.active {
		t.Fatal("not active after the first toggle")
	}
	if !tl.state.Settled(1e-3) {
		t.Error("not settled open")
	}
	if got := tl.state.Blobs[1].Position.Y; math.Abs(got-l.OpenY(1)) > 1e-3 {
		t.Errorf("child 1 y = %v, want %v", got, l.OpenY(1))
	}
	tl.advanceTo(11)
	if tl.active {
		t.Fatal("still active after the second toggle")
	}
	if !tl.state.Settled(1e-3) {
		t.Error("not settled closed")
	}
	if math.Abs(tl.now-11) > physicsStep {
		t.Errorf("clock = %v, want ~11", tl.now)
	}
}

func TestRunWritesGIF(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "small.yaml")
	if err := os.WriteFile(cfgPath, []byte("canvas:\n  width: 40\n  height: 60\nmaterial:\n  backdrop: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.gif")
	err := run(context.Background(), options{
		configPath: cfgPath,
		out:        out,
		format:     "gif",
		duration:   0.5,
		fps:        10,
		toggles:    "0",
		workers:    2,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 5 {
		t.Errorf("frames = %d, want 5", len(g.Image))
	}
	if b := g.Image[0].Bounds(); b.Dx() != 40 || b.Dy() != 60 {
		t.Errorf("bounds = %v", b)
	}
}

func TestRunWritesPNGFrames(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "small.yaml")
	if err := os.WriteFile(cfgPath, []byte("canvas:\n  width: 20\n  height: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "frames")
	err := run(context.Background(), options{
		configPath: cfgPath, out: out, format: "png", duration: 0.2, fps: 10,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{"frame_0000.png", "frame_0001.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRunRejectsFormat(t *testing.T) {
	if err := run(context.Background(), options{format: "bmp", duration: 1, fps: 1}); err == nil {
		t.Error("expected error")
	}
}
