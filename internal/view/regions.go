package view

import "sync"

// Snapshot is the observable state of the three regions.
type Snapshot struct {
	LoadingVisible bool   `json:"loading_visible"`
	ErrorVisible   bool   `json:"error_visible"`
	ErrorMessage   string `json:"error_message,omitempty"`
	Content        Body   `json:"content"`
}

// Regions is an in-memory Renderer. It is safe for concurrent use, so one
// goroutine can present while another renders snapshots.
type Regions struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewRegions returns regions with everything hidden and empty.
func NewRegions() *Regions { return &Regions{} }

func (r *Regions) ShowLoading() { r.update(func(s *Snapshot) { s.LoadingVisible = true }) }
func (r *Regions) HideLoading() { r.update(func(s *Snapshot) { s.LoadingVisible = false }) }
func (r *Regions) HideError()   { r.update(func(s *Snapshot) { s.ErrorVisible = false }) }

func (r *Regions) ShowError(message string) {
	r.update(func(s *Snapshot) {
		s.ErrorMessage = message
		s.ErrorVisible = true
	})
}

func (r *Regions) ShowContent(body Body) {
	r.update(func(s *Snapshot) { s.Content = body })
}

func (r *Regions) Reset(placeholder string) {
	r.update(func(s *Snapshot) { s.Content = Body{Placeholder: placeholder} })
}

// Snapshot returns a copy of the current region state.
func (r *Regions) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := r.snap
	snap.Content.Records = append(snap.Content.Records[:0:0], snap.Content.Records...)
	return snap
}

func (r *Regions) update(fn func(*Snapshot)) {
	r.mu.Lock()
	fn(&r.snap)
	r.mu.Unlock()
}
