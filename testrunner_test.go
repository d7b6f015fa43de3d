package haze

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "set", "name": "near", "value": 1.5},
			{"action": "color", "name": "color", "color": "#ff0000"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Name != "near" || runner.steps[3].Value != 1.5 {
		t.Error("step 3 mismatch")
	}
	if runner.steps[4].Color != "#ff0000" {
		t.Error("step 4 mismatch")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "explode"}]}`},
		{"set without name", `{"steps": [{"action": "set", "value": 1}]}`},
		{"color without name", `{"steps": [{"action": "color", "color": "red"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTestScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(path, []byte(`{"steps": [{"action": "wait", "frames": 1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTestScriptFile(path); err != nil {
		t.Errorf("LoadTestScriptFile: %v", err)
	}
	if _, err := LoadTestScriptFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	app, _ := newTestApp()
	data := []byte(`{"steps": [{"action": "click", "x": 400, "y": 5}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	app.SetTestRunner(runner, false)

	// First step call: click queues press+release (2 events).
	runner.step(app)
	if len(app.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(app.injectQueue))
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	app.processInput()
	app.processInput()
	if !app.Panel().Closed() {
		t.Error("scripted click on the title bar should collapse the panel")
	}

	runner.step(app)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	app, _ := newTestApp()
	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(app)
	// Frames 2 and 3: count down.
	runner.step(app)
	runner.step(app)
	if runner.Done() {
		t.Error("should not be done before the screenshot step")
	}

	// Frame 4: execute screenshot step, runner finishes.
	runner.step(app)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(app.screenshotQueue) != 1 || app.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", app.screenshotQueue)
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	app, _ := newTestApp()
	data := []byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(app)
	if len(app.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", len(app.injectQueue))
	}
}

func TestRunnerStep_SetClampsThroughHelper(t *testing.T) {
	app, setup := newTestApp()
	data := []byte(`{"steps": [
		{"action": "set", "name": "near", "value": 1.8},
		{"action": "set", "name": "far", "value": 1.2}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(app)
	if setup.Fog.Near() != 1.8 || setup.Fog.Far() != 2 {
		t.Errorf("after set near: %v, %v", setup.Fog.Near(), setup.Fog.Far())
	}
	runner.step(app)
	if setup.Fog.Near() != 1.2 || setup.Fog.Far() != 1.2 {
		t.Errorf("after set far: %v, %v; want 1.2, 1.2", setup.Fog.Near(), setup.Fog.Far())
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Color(t *testing.T) {
	app, setup := newTestApp()
	data := []byte(`{"steps": [{"action": "color", "name": "color", "color": "tomato"}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	runner.step(app)
	if setup.Fog.Color() != "#ff6347" {
		t.Errorf("fog color = %q, want #ff6347", setup.Fog.Color())
	}
	if setup.Scene.Background.Hex() != 0xff6347 {
		t.Errorf("background = %06x, want ff6347", setup.Scene.Background.Hex())
	}
}

func TestRunnerStep_UnknownRowIsSkipped(t *testing.T) {
	app, setup := newTestApp()
	data := []byte(`{"steps": [{"action": "set", "name": "density", "value": 1}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	oldStderr := os.Stderr
	_, w, _ := os.Pipe()
	os.Stderr = w
	runner.step(app)
	w.Close()
	os.Stderr = oldStderr

	if setup.Fog.Near() != 1 || setup.Fog.Far() != 2 {
		t.Error("unknown row changed fog")
	}
	if !runner.Done() {
		t.Error("runner should move past an unknown row")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	app, _ := newTestApp()
	data := []byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(app)
	if len(app.injectQueue) != 2 {
		t.Fatalf("expected 2 events, got %d", len(app.injectQueue))
	}

	// Should NOT advance because inject queue is not drained.
	runner.step(app)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	app.injectQueue = app.injectQueue[:0]

	runner.step(app)
	if len(app.screenshotQueue) != 1 || app.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", app.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

// --- Screenshots ---

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"far-pulls-near", "far-pulls-near"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAndDirDefault(t *testing.T) {
	app, _ := newTestApp()
	if app.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", app.ScreenshotDir, "screenshots")
	}
	app.Screenshot("a")
	app.Screenshot("b")
	if len(app.screenshotQueue) != 2 || app.screenshotQueue[0] != "a" || app.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", app.screenshotQueue)
	}
}

func TestUnpremultiply(t *testing.T) {
	src := []byte{
		128, 64, 0, 128, // half alpha
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	dst := make([]byte, len(src))
	unpremultiply(src, dst)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}
