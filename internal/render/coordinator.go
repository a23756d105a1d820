package render

import (
	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/model"
)

// View receives the computed table. SetCells only carries the cells that
// changed; anything not in the map keeps its previous text.
type View interface {
	SetHeaders(headers []string)
	SetRows(rows []RowDescriptor)
	SetCells(cells map[CellKey]string)
	ContentSize() model.Size
}

// Host resizes the window that holds the View
type Host interface {
	ResizeToContent(size model.Size)
}

// Window sizing defaults
const (
	DefaultPadding   = 12
	DefaultMinWidth  = 500
	DefaultMinHeight = 70
	DefaultMaxWidth  = 1400
)

// Options control how the content size is turned into a window size
type Options struct {
	Padding float32
	MinSize model.Size
	MaxSize model.Size
}

// DefaultOptions returns the standard bar sizing
func DefaultOptions() Options {
	return Options{
		Padding: DefaultPadding,
		MinSize: model.Size{Width: DefaultMinWidth, Height: DefaultMinHeight},
		MaxSize: model.Size{Width: DefaultMaxWidth},
	}
}

// Coordinator publishes headers, rows and cells to a View and then asks the
// Host to fit the window around the content. It keeps no state of its own.
type Coordinator struct {
	catalog *catalog.Catalog
	view    View
	host    Host
	opts    Options
}

// NewCoordinator creates a coordinator. host may be nil.
func NewCoordinator(cat *catalog.Catalog, view View, host Host, opts Options) *Coordinator {
	return &Coordinator{
		catalog: cat,
		view:    view,
		host:    host,
		opts:    opts,
	}
}

// RenderHeaders publishes the header row
func (c *Coordinator) RenderHeaders(state model.SelectionState) []string {
	headers := Headers(c.catalog, state)
	c.view.SetHeaders(headers)
	c.resize()
	return headers
}

// RenderRows publishes the row layout
func (c *Coordinator) RenderRows(state model.SelectionState) []RowDescriptor {
	rows := Rows(c.catalog, state)
	c.view.SetRows(rows)
	c.resize()
	return rows
}

// ApplySnapshot publishes formatted cells for the selected queues in snapshot
func (c *Coordinator) ApplySnapshot(state model.SelectionState, snapshot model.MetricsSnapshot) map[CellKey]string {
	cells := Cells(c.catalog, state, snapshot)
	c.view.SetCells(cells)
	c.resize()
	return cells
}

// WindowSize is the window size for the given content size
func (c *Coordinator) WindowSize(content model.Size) model.Size {
	return content.Add(c.opts.Padding).Clamp(c.opts.MinSize, c.opts.MaxSize)
}

func (c *Coordinator) resize() {
	if c.host == nil {
		return
	}
	c.host.ResizeToContent(c.WindowSize(c.view.ContentSize()))
}
