package ui

import (
	"slices"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/render"
	"github.com/ytget/prodbar/internal/settings"
)

// BarWindow is the metrics bar: a grid with a header row and one row per
// selected queue, plus a settings button. It implements render.View and
// render.Host. Widget changes are scheduled with fyne.Do so any goroutine
// may call it.
type BarWindow struct {
	window     fyne.Window
	loc        *Localization
	onSettings func()
	sizer      func(model.Size) model.Size

	mu       sync.Mutex
	headers  []string
	rows     []render.RowDescriptor
	cells    map[render.CellKey]string
	textSize float32
	lastSize model.Size

	// owned by the fyne goroutine
	grid   *fyne.Container
	labels map[render.CellKey]*widget.Label
	toast  *widget.PopUp
}

// NewBarWindow creates the bar window without showing it
func NewBarWindow(app fyne.App, loc *Localization) *BarWindow {
	b := &BarWindow{
		window:   app.NewWindow(loc.GetText(KeyBarTitle)),
		loc:      loc,
		cells:    make(map[render.CellKey]string),
		textSize: TextSizeNormal,
		labels:   make(map[render.CellKey]*widget.Label),
	}
	b.window.SetIcon(LoadAppIcon())

	settingsBtn := widget.NewButton(IconSettings, func() {
		if b.onSettings != nil {
			b.onSettings()
		}
	})
	settingsBtn.Importance = widget.LowImportance

	b.grid = container.NewGridWithColumns(1)
	b.window.SetContent(container.NewBorder(nil, nil, nil, container.NewVBox(settingsBtn), b.grid))
	return b
}

// Window returns the underlying fyne window
func (b *BarWindow) Window() fyne.Window {
	return b.window
}

// SetOnSettings sets the settings button action
func (b *BarWindow) SetOnSettings(fn func()) {
	b.onSettings = fn
}

// SetSizer sets how a content size becomes a window size for Refit
func (b *BarWindow) SetSizer(fn func(model.Size) model.Size) {
	b.sizer = fn
}

// SetHeaders implements render.View
func (b *BarWindow) SetHeaders(headers []string) {
	b.mu.Lock()
	b.headers = slices.Clone(headers)
	b.mu.Unlock()
	b.rebuild()
}

// SetRows implements render.View
func (b *BarWindow) SetRows(rows []render.RowDescriptor) {
	b.mu.Lock()
	b.rows = slices.Clone(rows)
	b.mu.Unlock()
	b.rebuild()
}

// SetCells implements render.View. Cells not in the map keep their text.
func (b *BarWindow) SetCells(cells map[render.CellKey]string) {
	b.mu.Lock()
	for k, text := range cells {
		b.cells[k] = text
	}
	b.mu.Unlock()

	fyne.Do(func() {
		for k, text := range cells {
			if label, ok := b.labels[k]; ok {
				label.SetText(text)
			}
		}
	})
}

// ContentSize implements render.View by measuring the text that the grid
// shows. Grid columns share one width, so the widest cell decides.
func (b *BarWindow) ContentSize() model.Size {
	b.mu.Lock()
	defer b.mu.Unlock()

	columns := len(b.headers)
	if columns == 0 {
		return model.Size{}
	}

	var widest, lineHeight float32
	measure := func(text string, bold bool) {
		size := fyne.MeasureText(text, b.textSize, fyne.TextStyle{Bold: bold})
		widest = max(widest, size.Width)
		lineHeight = max(lineHeight, size.Height)
	}
	for _, h := range b.headers {
		measure(h, true)
	}
	for _, row := range b.rows {
		measure(string(row.Queue), false)
		for _, key := range row.Cells {
			measure(b.cellText(key), false)
		}
	}

	lines := float32(len(b.rows) + 1)
	return model.Size{
		Width:  float32(columns)*(widest+CellPadding) + SettingsButtonWidth,
		Height: lines * (lineHeight + CellPadding/2 + RowGap),
	}
}

// ResizeToContent implements render.Host
func (b *BarWindow) ResizeToContent(size model.Size) {
	b.mu.Lock()
	b.lastSize = size
	b.mu.Unlock()

	fyne.Do(func() {
		b.window.Resize(fyne.NewSize(size.Width, size.Height))
	})
}

// LastSize returns the size most recently requested by ResizeToContent
func (b *BarWindow) LastSize() model.Size {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSize
}

// SetTextSize changes the text size, then rebuilds and refits the grid
func (b *BarWindow) SetTextSize(size float32) {
	b.mu.Lock()
	changed := b.textSize != size
	b.textSize = size
	b.mu.Unlock()

	if changed {
		b.rebuild()
		b.Refit()
	}
}

// Refit resizes the window around the current content
func (b *BarWindow) Refit() {
	if b.sizer == nil {
		return
	}
	b.ResizeToContent(b.sizer(b.ContentSize()))
}

// CellText returns the text shown for a cell
func (b *BarWindow) CellText(key render.CellKey) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cellText(key)
}

// ShowToast shows a notice in the corner of the bar for a few seconds
func (b *BarWindow) ShowToast(n settings.Notice) {
	fyne.Do(func() {
		if b.toast != nil {
			b.toast.Hide()
		}

		message := widget.NewLabel(IconWarning + " " + n.Message)
		message.Wrapping = fyne.TextWrapWord

		var popup *widget.PopUp
		closeBtn := widget.NewButton(IconClose, func() {
			popup.Hide()
		})
		closeBtn.Importance = widget.LowImportance

		popup = widget.NewPopUp(container.NewBorder(nil, nil, nil, closeBtn, message), b.window.Canvas())
		canvasSize := b.window.Canvas().Size()
		popup.Resize(fyne.NewSize(ToastWidth, ToastHeight))
		popup.Move(fyne.NewPos(max(0, canvasSize.Width-ToastWidth-ToastMargin), ToastMargin))
		popup.Show()
		b.toast = popup

		afterUI(ToastAutoHide, popup.Hide)
	})
}

func (b *BarWindow) cellText(key render.CellKey) string {
	if text, ok := b.cells[key]; ok {
		return text
	}
	return CellPlaceholder
}

// rebuild recreates the grid from the current headers and rows
func (b *BarWindow) rebuild() {
	b.mu.Lock()
	headers := slices.Clone(b.headers)
	rows := slices.Clone(b.rows)
	texts := make(map[render.CellKey]string, len(b.cells))
	for _, row := range rows {
		for _, key := range row.Cells {
			texts[key] = b.cellText(key)
		}
	}
	b.mu.Unlock()

	fyne.Do(func() {
		columns := max(1, len(headers))
		objects := make([]fyne.CanvasObject, 0, columns*(len(rows)+1))
		for _, h := range headers {
			label := widget.NewLabel(h)
			label.TextStyle = fyne.TextStyle{Bold: true}
			objects = append(objects, label)
		}

		labels := make(map[render.CellKey]*widget.Label, len(texts))
		for _, row := range rows {
			objects = append(objects, widget.NewLabel(string(row.Queue)))
			for _, key := range row.Cells {
				label := widget.NewLabel(texts[key])
				labels[key] = label
				objects = append(objects, label)
			}
		}

		b.labels = labels
		b.grid.Layout = layout.NewGridLayoutWithColumns(columns)
		b.grid.Objects = objects
		b.grid.Refresh()
	})
}

// afterUI runs fn on the UI goroutine once d has passed, unless the app is
// gone by then
func afterUI(d time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(d, func() {
		if fyne.CurrentApp() == nil {
			return
		}
		fyne.Do(fn)
	})
}
