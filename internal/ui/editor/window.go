package editor

import (
	"fitslots/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Catalog is the catalog editing surface the window operates on.
type Catalog interface {
	Catalog() model.Catalog
	AddItem(category, name, reps string) error
	RemoveItem(category string, item model.Item) error
}

// Window lists exercises per category and lets the user add or remove them.
type Window struct {
	window  fyne.Window
	catalog Catalog
	tabs    *container.AppTabs
	lists   map[string]*fyne.Container
}

// New creates the editor window.
func New(app fyne.App, catalog Catalog) *Window {
	window := app.NewWindow("Упражнения")
	editor := &Window{
		window:  window,
		catalog: catalog,
		tabs:    container.NewAppTabs(),
		lists:   make(map[string]*fyne.Container),
	}
	editor.build()
	window.SetContent(editor.tabs)
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(window.Hide)
	return editor
}

// Show refreshes the lists and displays the window.
func (editor *Window) Show() {
	editor.refresh()
	editor.window.Show()
	editor.window.RequestFocus()
}

func (editor *Window) build() {
	for _, category := range editor.catalog.Catalog().Categories {
		name := category.Name
		list := container.NewVBox()
		editor.lists[name] = list

		nameEntry := widget.NewEntry()
		nameEntry.SetPlaceHolder("Название")
		repsEntry := widget.NewEntry()
		repsEntry.SetPlaceHolder("Повторы")
		add := widget.NewButton("Добавить", func() {
			if err := editor.catalog.AddItem(name, nameEntry.Text, repsEntry.Text); err != nil {
				dialog.ShowError(err, editor.window)
				return
			}
			nameEntry.SetText("")
			repsEntry.SetText("")
			editor.refresh()
		})

		form := container.NewBorder(nil, nil, nil, add, container.NewGridWithColumns(2, nameEntry, repsEntry))
		content := container.NewBorder(nil, form, nil, nil, container.NewVScroll(list))
		editor.tabs.Append(container.NewTabItem(name, content))
	}
	editor.refresh()
}

func (editor *Window) refresh() {
	for _, category := range editor.catalog.Catalog().Categories {
		list, ok := editor.lists[category.Name]
		if !ok {
			continue
		}
		rows := make([]fyne.CanvasObject, 0, len(category.Items))
		for _, item := range category.Items {
			rows = append(rows, editor.itemRow(category.Name, item))
		}
		list.Objects = rows
		list.Refresh()
	}
}

func (editor *Window) itemRow(category string, item model.Item) fyne.CanvasObject {
	remove := widget.NewButton("×", func() {
		if err := editor.catalog.RemoveItem(category, item); err != nil {
			dialog.ShowError(err, editor.window)
			return
		}
		editor.refresh()
	})
	remove.Importance = widget.DangerImportance
	return container.NewHBox(widget.NewLabel(item.Label()), layout.NewSpacer(), remove)
}
