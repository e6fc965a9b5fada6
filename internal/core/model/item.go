package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLastItem indicates a removal that would leave a category empty.
	ErrLastItem = errors.New("category must keep at least one item")
	// ErrItemNotFound indicates the item is not part of the category.
	ErrItemNotFound = errors.New("item not found")
	// ErrCategoryNotFound indicates an unknown category name.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrBlankItem indicates an item with an empty name or reps text.
	ErrBlankItem = errors.New("item name and reps must not be blank")
)

// Item is a single exercise shown on a reel.
type Item struct {
	Name string `json:"name"`
	Reps string `json:"reps"`
}

// NewItem trims and validates the item fields.
func NewItem(name, reps string) (Item, error) {
	name = strings.TrimSpace(name)
	reps = strings.TrimSpace(reps)
	if name == "" || reps == "" {
		return Item{}, ErrBlankItem
	}
	return Item{Name: name, Reps: reps}, nil
}

// Label renders the item the way history entries store it.
func (item Item) Label() string {
	return fmt.Sprintf("%s (%s)", item.Name, item.Reps)
}

// Category is an ordered, non-empty list of items.
type Category struct {
	Name  string
	Items []Item
}

// Add appends an item to the category.
func (category *Category) Add(item Item) error {
	if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Reps) == "" {
		return ErrBlankItem
	}
	category.Items = append(category.Items, item)
	return nil
}

// Remove deletes the first item equal to target.
// The last remaining item is never removed.
func (category *Category) Remove(target Item) error {
	index := -1
	for i, item := range category.Items {
		if item == target {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("remove %q from %q: %w", target.Name, category.Name, ErrItemNotFound)
	}
	if len(category.Items) <= 1 {
		return fmt.Errorf("remove %q from %q: %w", target.Name, category.Name, ErrLastItem)
	}
	category.Items = append(category.Items[:index:index], category.Items[index+1:]...)
	return nil
}

// Clone returns a deep copy of the category.
func (category Category) Clone() Category {
	return Category{
		Name:  category.Name,
		Items: append([]Item(nil), category.Items...),
	}
}
