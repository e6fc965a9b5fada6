package editor

import (
	"testing"

	"fitslots/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

type memoryCatalog struct {
	catalog model.Catalog
}

func (memory *memoryCatalog) Catalog() model.Catalog {
	return memory.catalog.Clone()
}

func (memory *memoryCatalog) AddItem(categoryName, name, reps string) error {
	item, err := model.NewItem(name, reps)
	if err != nil {
		return err
	}
	category, err := memory.catalog.Category(categoryName)
	if err != nil {
		return err
	}
	return category.Add(item)
}

func (memory *memoryCatalog) RemoveItem(categoryName string, item model.Item) error {
	category, err := memory.catalog.Category(categoryName)
	if err != nil {
		return err
	}
	return category.Remove(item)
}

func removeButton(t *testing.T, list *fyne.Container, row int) *widget.Button {
	t.Helper()
	rowObject, ok := list.Objects[row].(*fyne.Container)
	if !ok {
		t.Fatalf("row %d is %T", row, list.Objects[row])
	}
	button, ok := rowObject.Objects[len(rowObject.Objects)-1].(*widget.Button)
	if !ok {
		t.Fatalf("row %d has no remove button", row)
	}
	return button
}

func TestEditorRemovesItemsButKeepsLast(t *testing.T) {
	app := test.NewTempApp(t)
	memory := &memoryCatalog{catalog: model.Catalog{Categories: []model.Category{{
		Name:  "Сила",
		Items: []model.Item{{Name: "Пресс", Reps: "25 раз"}, {Name: "Выпады", Reps: "10 на ногу"}},
	}}}}
	editor := New(app, memory)
	list := editor.lists["Сила"]

	if len(list.Objects) != 2 {
		t.Fatalf("rows = %d, want 2", len(list.Objects))
	}

	test.Tap(removeButton(t, list, 0))
	if len(list.Objects) != 1 {
		t.Fatalf("rows after remove = %d, want 1", len(list.Objects))
	}

	test.Tap(removeButton(t, list, 0))
	if len(list.Objects) != 1 {
		t.Fatalf("rows after removing last = %d, want 1", len(list.Objects))
	}
	if got := memory.catalog.Categories[0].Items; len(got) != 1 || got[0].Name != "Выпады" {
		t.Fatalf("remaining items = %v", got)
	}
}
