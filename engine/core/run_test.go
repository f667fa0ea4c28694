package core

import (
	"errors"
	"slices"
	"testing"
	"time"
)

type recordRenderer struct {
	Renderer
	calls *[]string
}

func (r recordRenderer) Clear(_, _, _, _ float32) { *r.calls = append(*r.calls, "clear") }

type sceneApp struct{ calls *[]string }

func (a sceneApp) OnStart(*Engine)           {}
func (a sceneApp) OnUpdate(*Engine, float64) {}
func (a sceneApp) OnEvent(*Engine, Event)    {}
func (a sceneApp) OnShutdown(*Engine)        {}
func (a sceneApp) OnRender(*Engine, float64) { *a.calls = append(*a.calls, "render") }

type captureApp struct {
	sceneApp
	err error
}

func (a captureApp) OnCapture(*Engine) error {
	*a.calls = append(*a.calls, "capture")
	return a.err
}

func (a captureApp) OnOverlay(*Engine) { *a.calls = append(*a.calls, "overlay") }

func TestRenderFrameOrder(t *testing.T) {
	tests := []struct {
		name    string
		app     func(calls *[]string) App
		want    []string
		wantErr bool
	}{
		{
			name: "plain app",
			app:  func(c *[]string) App { return sceneApp{c} },
			want: []string{"clear", "render"},
		},
		{
			name: "capture before overlay",
			app:  func(c *[]string) App { return captureApp{sceneApp: sceneApp{c}} },
			want: []string{"clear", "render", "capture", "overlay"},
		},
		{
			name:    "overlay after failed capture",
			app:     func(c *[]string) App { return captureApp{sceneApp: sceneApp{c}, err: errors.New("no framebuffer")} },
			want:    []string{"clear", "render", "capture", "overlay"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			e := &Engine{Renderer: recordRenderer{calls: &calls}}
			err := renderFrame(tt.app(&calls), e, [4]float32{}, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v", err)
			}
			if !slices.Equal(calls, tt.want) {
				t.Errorf("calls = %q, want %q", calls, tt.want)
			}
		})
	}
}

func TestFixedSteps(t *testing.T) {
	tests := []struct {
		pending   time.Duration
		steps     int
		remaining time.Duration
	}{
		{0, 0, 0},
		{Tick - 1, 0, Tick - 1},
		{Tick, 1, 0},
		{3*Tick + 5, 3, 5},
		{20 * Tick, maxCatchUp, 10 * Tick},
	}
	for _, tt := range tests {
		steps, rest := fixedSteps(tt.pending)
		if steps != tt.steps || rest != tt.remaining {
			t.Errorf("fixedSteps(%v) = %d, %v; want %d, %v", tt.pending, steps, rest, tt.steps, tt.remaining)
		}
	}
}
