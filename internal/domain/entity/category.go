package entity

// Category representa una categoría de artículos y almacenes.
type Category struct {
	ID     int64
	Name   string
	Status bool
}
