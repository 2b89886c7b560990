package entity

// Article representa un artículo del inventario. Todos sus almacenes comparten su categoría.
type Article struct {
	ID           int64
	Name         string
	Description  string
	Status       bool
	CategoryID   int64
	CategoryName string
	StorageIDs   []int64
}
