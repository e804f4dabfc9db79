package charts

import (
	"errors"
	"fmt"
	"sync"
)

var ErrCanvasInUse = errors.New("canvas already has a chart")

// Widget is a chart mounted on a canvas. Kind names the Chart.js chart type.
type Widget struct {
	Canvas   string    `json:"canvas"`
	Kind     string    `json:"kind"`
	Title    string    `json:"title,omitempty"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label  string    `json:"label"`
	Data   []float64 `json:"data"`
	Color  string    `json:"color,omitempty"`
	Colors []string  `json:"colors,omitempty"`
	Axis   string    `json:"axis,omitempty"`
}

// Registry tracks the widgets of one render pass. Teardown must run before a
// pass mounts anything, and a canvas holds at most one widget per pass.
type Registry struct {
	mu        sync.Mutex
	mounted   []Widget
	byCanvas  map[string]bool
	destroyed int
}

func NewRegistry() *Registry {
	return &Registry{byCanvas: map[string]bool{}}
}

// Teardown destroys every widget of the previous pass.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teardown()
}

func (r *Registry) teardown() {
	r.destroyed += len(r.mounted)
	r.mounted = nil
	r.byCanvas = map[string]bool{}
}

func (r *Registry) Mount(w Widget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mount(w)
}

func (r *Registry) mount(w Widget) error {
	if r.byCanvas[w.Canvas] {
		return fmt.Errorf("mount %s: %w", w.Canvas, ErrCanvasInUse)
	}
	r.byCanvas[w.Canvas] = true
	r.mounted = append(r.mounted, w)
	return nil
}

// Pass runs one render pass: the previous widgets are torn down and ws are
// mounted while holding the lock, so concurrent passes never interleave. It
// returns the widgets now live.
func (r *Registry) Pass(ws []Widget) ([]Widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teardown()
	for _, w := range ws {
		if err := r.mount(w); err != nil {
			return nil, err
		}
	}
	return append([]Widget(nil), r.mounted...), nil
}

// Mounted returns the live widgets in mount order.
func (r *Registry) Mounted() []Widget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Widget(nil), r.mounted...)
}

// Destroyed counts widgets torn down over the registry's lifetime.
func (r *Registry) Destroyed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}
