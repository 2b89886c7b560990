package entity

// Storage representa un almacén. Pertenece a una categoría y puede tener un responsable (TRABAJADOR).
type Storage struct {
	ID              int64
	Identifier      string // ej. A-001
	Status          bool
	CategoryID      int64
	CategoryName    string
	ResponsibleID   *int64
	ResponsibleName string
	Articles        []Article // resumen de artículos almacenados
}

// HasResponsible indica si el almacén tiene responsable asignado.
func (s Storage) HasResponsible() bool {
	return s.ResponsibleID != nil
}

// ResponsibleIs compara el responsable asignado con userID.
func (s Storage) ResponsibleIs(userID int64) bool {
	return s.ResponsibleID != nil && *s.ResponsibleID == userID
}
