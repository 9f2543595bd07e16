package dashboard

import "sync"

// Surface identifiers bound by the view binder.
const (
	SurfaceTotalValue       = "totalValue"
	SurfaceTotalCost        = "totalCost"
	SurfaceProfitLoss       = "profitLoss"
	SurfaceProfitLossPct    = "profitLossPercent"
	SurfaceHoldingsTable    = "holdingsTableBody"
	SurfaceAllHoldingsTable = "allHoldingsTableBody"
)

// Cell is one formatted table cell. Style is "positive", "negative" or empty.
type Cell struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// Row is one table row keyed by investment id.
type Row struct {
	Key   int64             `json:"key"`
	Cells []Cell            `json:"cells"`
	Meta  map[string]string `json:"meta,omitempty"`
}

// Surface is a named display target holding either text or table rows.
type Surface struct {
	ID    string `json:"id"`
	Text  string `json:"text,omitempty"`
	Style string `json:"style,omitempty"`
	Rows  []Row  `json:"rows,omitempty"`
}

// View is the set of surfaces currently mounted for one page.
// Writes to a surface that is not mounted are ignored.
type View struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
}

// NewView creates a view with the given surfaces mounted.
func NewView(ids ...string) *View {
	v := &View{surfaces: make(map[string]*Surface, len(ids))}
	for _, id := range ids {
		v.surfaces[id] = &Surface{ID: id}
	}
	return v
}

// Mount adds an empty surface. Mounting an existing surface keeps its content.
func (v *View) Mount(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.surfaces[id]; !ok {
		v.surfaces[id] = &Surface{ID: id}
	}
}

// Unmount removes a surface.
func (v *View) Unmount(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.surfaces, id)
}

// SetText writes text content. It reports whether the surface exists.
func (v *View) SetText(id, text, style string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.surfaces[id]
	if !ok {
		return false
	}
	s.Text = text
	s.Style = style
	return true
}

// SetRows replaces the rows of a table surface. It reports whether the surface exists.
func (v *View) SetRows(id string, rows []Row) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.surfaces[id]
	if !ok {
		return false
	}
	s.Rows = rows
	return true
}

// Surface returns a copy of a surface.
func (v *View) Surface(id string) (Surface, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s, ok := v.surfaces[id]
	if !ok {
		return Surface{}, false
	}
	return copySurface(s), true
}

// Snapshot copies all mounted surfaces.
func (v *View) Snapshot() map[string]Surface {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string]Surface, len(v.surfaces))
	for id, s := range v.surfaces {
		out[id] = copySurface(s)
	}
	return out
}

func copySurface(s *Surface) Surface {
	c := *s
	if s.Rows != nil {
		c.Rows = append([]Row(nil), s.Rows...)
	}
	return c
}
