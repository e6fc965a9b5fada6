package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyCatalog indicates a catalog without categories.
var ErrEmptyCatalog = errors.New("catalog has no categories")

// Catalog is the ordered set of exercise categories, one reel per category.
type Catalog struct {
	Categories []Category
}

// DefaultCatalog returns the built-in exercise set.
func DefaultCatalog() Catalog {
	return Catalog{Categories: []Category{
		{Name: "Растяжка", Items: []Item{
			{Name: "Наклоны", Reps: "15 раз"},
			{Name: "Кобра", Reps: "30 сек"},
			{Name: "Замок", Reps: "20 сек"},
			{Name: "Шпагат", Reps: "1 мин"},
		}},
		{Name: "Выносливость", Items: []Item{
			{Name: "Берпи", Reps: "10 раз"},
			{Name: "Планка", Reps: "45 сек"},
			{Name: "Скакалка", Reps: "100 прыжков"},
			{Name: "Джампинг Джек", Reps: "30 раз"},
		}},
		{Name: "Сила", Items: []Item{
			{Name: "Приседания", Reps: "20 раз"},
			{Name: "Отжимания", Reps: "15 раз"},
			{Name: "Выпады", Reps: "10 на ногу"},
			{Name: "Пресс", Reps: "25 раз"},
		}},
	}}
}

// Validate checks that every category is named, unique and non-empty.
func (catalog Catalog) Validate() error {
	if len(catalog.Categories) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(catalog.Categories))
	for _, category := range catalog.Categories {
		if category.Name == "" {
			return fmt.Errorf("validate catalog: category without name")
		}
		if seen[category.Name] {
			return fmt.Errorf("validate catalog: duplicate category %q", category.Name)
		}
		seen[category.Name] = true
		if len(category.Items) == 0 {
			return fmt.Errorf("validate catalog: category %q: %w", category.Name, ErrLastItem)
		}
	}
	return nil
}

// Category returns the category with the given name.
func (catalog *Catalog) Category(name string) (*Category, error) {
	for i := range catalog.Categories {
		if catalog.Categories[i].Name == name {
			return &catalog.Categories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
}

// Clone returns a deep copy of the catalog.
func (catalog Catalog) Clone() Catalog {
	clone := Catalog{Categories: make([]Category, 0, len(catalog.Categories))}
	for _, category := range catalog.Categories {
		clone.Categories = append(clone.Categories, category.Clone())
	}
	return clone
}

// MarshalJSON encodes the catalog as an object keyed by category name,
// keeping the category order.
func (catalog Catalog) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, category := range catalog.Categories {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(category.Name)
		if err != nil {
			return nil, err
		}
		items := category.Items
		if items == nil {
			items = []Item{}
		}
		value, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by category name in document order.
func (catalog *Catalog) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected object, got %v", token)
	}

	categories := []Category{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		name, ok := token.(string)
		if !ok {
			return fmt.Errorf("catalog: expected category name, got %v", token)
		}
		var items []Item
		if err := decoder.Decode(&items); err != nil {
			return fmt.Errorf("catalog: category %q: %w", name, err)
		}
		categories = append(categories, Category{Name: name, Items: items})
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}

	catalog.Categories = categories
	return nil
}
