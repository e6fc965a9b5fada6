package drum

import (
	"image/color"

	"fitslots/internal/core/reel"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Width is the fixed width of one drum viewport.
const Width = float32(180)

var (
	accentColor     = color.NRGBA{R: 0, G: 255, B: 153, A: 255}
	backgroundColor = color.NRGBA{R: 43, G: 43, B: 43, A: 255}
	textColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	selectedText    = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

type row struct {
	background *canvas.Rectangle
	label      *canvas.Text
}

// Drum renders one reel as a clipped column of rows with a frame marking
// the centre row.
type Drum struct {
	reel     *reel.Reel
	rows     []row
	scroll   *container.Scroll
	frame    *canvas.Rectangle
	title    *canvas.Text
	object   fyne.CanvasObject
	selected map[int]bool
}

// New builds the drum for a reel and subscribes it to the reel's events.
func New(source *reel.Reel) *Drum {
	config := source.Config()
	items := source.DisplayItems()

	drum := &Drum{
		reel:     source,
		rows:     make([]row, 0, len(items)),
		selected: make(map[int]bool),
	}

	rowObjects := make([]fyne.CanvasObject, 0, len(items))
	for _, item := range items {
		background := canvas.NewRectangle(color.Transparent)
		label := canvas.NewText(item.Label(), textColor)
		label.Alignment = fyne.TextAlignCenter
		label.TextSize = 13
		drum.rows = append(drum.rows, row{background: background, label: label})
		rowObjects = append(rowObjects, container.NewStack(background, container.NewCenter(label)))
	}

	content := container.New(&rowsLayout{height: float32(config.ItemHeight)}, rowObjects...)
	drum.scroll = container.NewVScroll(content)
	drum.scroll.OnScrolled = func(fyne.Position) {
		drum.setOffset(drum.reel.State().Offset)
	}

	drum.frame = canvas.NewRectangle(color.Transparent)
	drum.frame.StrokeColor = accentColor
	drum.frame.StrokeWidth = 2

	drum.title = canvas.NewText(source.Name(), accentColor)
	drum.title.Alignment = fyne.TextAlignCenter
	drum.title.TextStyle = fyne.TextStyle{Bold: true}

	viewport := container.New(&viewportLayout{
		width:      Width,
		height:     float32(config.VisibleHeight),
		itemHeight: float32(config.ItemHeight),
	}, canvas.NewRectangle(backgroundColor), drum.scroll, drum.frame)
	drum.object = container.NewVBox(drum.title, viewport)

	drum.apply(reel.Event{Type: reel.EventFrame, Offset: source.State().Offset, Highlighted: source.HighlightedRows()})
	source.Subscribe(func(event reel.Event) {
		fyne.Do(func() {
			drum.apply(event)
		})
	})
	return drum
}

// CanvasObject returns the drum's root object.
func (drum *Drum) CanvasObject() fyne.CanvasObject {
	return drum.object
}

// Reel returns the reel the drum renders.
func (drum *Drum) Reel() *reel.Reel {
	return drum.reel
}

// Selected reports whether a display row is highlighted.
func (drum *Drum) Selected(row int) bool {
	return drum.selected[row]
}

// Offset returns the current scroll offset.
func (drum *Drum) Offset() float32 {
	return drum.scroll.Offset.Y
}

func (drum *Drum) apply(event reel.Event) {
	switch event.Type {
	case reel.EventFrame, reel.EventSettled:
		drum.setOffset(event.Offset)
	case reel.EventHighlight:
		drum.setSelected(event.Highlighted)
	}
}

func (drum *Drum) setOffset(offset float64) {
	drum.scroll.Offset = fyne.NewPos(0, float32(offset))
	drum.scroll.Refresh()
}

func (drum *Drum) setSelected(rows []int) {
	next := make(map[int]bool, len(rows))
	for _, index := range rows {
		next[index] = true
	}
	for index, current := range drum.rows {
		if next[index] == drum.selected[index] {
			continue
		}
		if next[index] {
			current.background.FillColor = accentColor
			current.label.Color = selectedText
		} else {
			current.background.FillColor = color.Transparent
			current.label.Color = textColor
		}
		current.background.Refresh()
		current.label.Refresh()
	}
	drum.selected = next
}

type rowsLayout struct {
	height float32
}

func (layout *rowsLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for i, object := range objects {
		object.Move(fyne.NewPos(0, float32(i)*layout.height))
		object.Resize(fyne.NewSize(size.Width, layout.height))
	}
}

func (layout *rowsLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	width := float32(0)
	for _, object := range objects {
		if minWidth := object.MinSize().Width; minWidth > width {
			width = minWidth
		}
	}
	return fyne.NewSize(width, float32(len(objects))*layout.height)
}

type viewportLayout struct {
	width      float32
	height     float32
	itemHeight float32
}

func (layout *viewportLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	background := objects[0]
	scroll := objects[1]
	frame := objects[2]

	background.Move(fyne.NewPos(0, 0))
	background.Resize(size)
	scroll.Move(fyne.NewPos(0, 0))
	scroll.Resize(size)

	frame.Move(fyne.NewPos(0, (size.Height-layout.itemHeight)/2))
	frame.Resize(fyne.NewSize(size.Width, layout.itemHeight))
}

func (layout *viewportLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(layout.width, layout.height)
}
