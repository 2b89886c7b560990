// Package consistency evalúa invariantes que cruzan entidades (unicidad de correo y nombre,
// exclusividad del responsable, categoría compartida entre artículo y almacenes) sobre una
// instantánea en memoria. Nada aquí devuelve error ni hace panic: el fallo es false o una Violation.
package consistency

import (
	"sort"
	"strings"

	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"golang.org/x/text/cases"
)

// Snapshot listados completos obtenidos del gateway justo antes de validar.
type Snapshot struct {
	Users      []entity.User
	Storages   []entity.Storage
	Categories []entity.Category
	Articles   []entity.Article
}

// Códigos de violación.
const (
	CodeEmailTaken          = "email_taken"
	CodeResponsibleAssigned = "responsible_assigned"
	CodeArticleNameTaken    = "article_name_taken"
	CodeCategoryMismatch    = "category_mismatch"
	CodeIdentifierTaken     = "identifier_taken"
	CodeResponsibleInvalid  = "responsible_invalid"
)

// Violation invariante incumplido, asociado al campo más relevante del formulario.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Violations conjunto de violaciones de una validación.
type Violations []Violation

// ByField agrupa por campo conservando el primer mensaje de cada uno.
func (vs Violations) ByField() map[string]string {
	out := make(map[string]string, len(vs))
	for _, v := range vs {
		if _, seen := out[v.Field]; !seen {
			out[v.Field] = v.Message
		}
	}
	return out
}

// Empty indica si no hay violaciones.
func (vs Violations) Empty() bool { return len(vs) == 0 }

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func excluded(id int64, exclude *int64) bool {
	return exclude != nil && *exclude == id
}

// EmailUnique true si ningún otro usuario usa el correo (comparación sin mayúsculas).
func EmailUnique(email string, users []entity.User, excludeUserID *int64) bool {
	want := fold(email)
	for _, u := range users {
		if excluded(u.ID, excludeUserID) {
			continue
		}
		if fold(u.Email) == want {
			return false
		}
	}
	return true
}

// ResponsibleAvailable true si ningún otro almacén tiene a userID como responsable.
func ResponsibleAvailable(userID int64, storages []entity.Storage, excludeStorageID *int64) bool {
	for _, s := range storages {
		if excluded(s.ID, excludeStorageID) {
			continue
		}
		if s.ResponsibleIs(userID) {
			return false
		}
	}
	return true
}

// ResponsibleEligible true si userID es un TRABAJADOR activo de users, o si ya es el
// responsable de currentStorageID (la edición conserva al responsable actual).
func ResponsibleEligible(userID int64, users []entity.User, storages []entity.Storage, currentStorageID *int64) bool {
	if currentStorageID != nil {
		for _, s := range storages {
			if s.ID == *currentStorageID && s.ResponsibleIs(userID) {
				return true
			}
		}
	}
	for _, u := range users {
		if u.ID == userID {
			return u.IsResponsibleCandidate()
		}
	}
	return false
}

// ArticleNameUnique true si ningún otro artículo tiene el mismo nombre (sin mayúsculas).
func ArticleNameUnique(name string, articles []entity.Article, excludeArticleID *int64) bool {
	want := fold(name)
	for _, a := range articles {
		if excluded(a.ID, excludeArticleID) {
			continue
		}
		if fold(a.Name) == want {
			return false
		}
	}
	return true
}

// ArticleCategoryMatchesStorages true si todos los almacenes referenciados son de categoryID.
// Un almacén desconocido en la instantánea cuenta como incompatible.
func ArticleCategoryMatchesStorages(categoryID int64, storageIDs []int64, storages []entity.Storage) bool {
	byID := make(map[int64]entity.Storage, len(storages))
	for _, s := range storages {
		byID[s.ID] = s
	}
	for _, id := range storageIDs {
		s, ok := byID[id]
		if !ok || s.CategoryID != categoryID {
			return false
		}
	}
	return true
}

// StorageIdentifierUnique true si ningún otro almacén usa el identificador (sin mayúsculas).
func StorageIdentifierUnique(identifier string, storages []entity.Storage, excludeStorageID *int64) bool {
	want := fold(identifier)
	for _, s := range storages {
		if excluded(s.ID, excludeStorageID) {
			continue
		}
		if fold(s.Identifier) == want {
			return false
		}
	}
	return true
}

// AvailableResponsibles candidatos a responsable: TRABAJADOR activos sin almacén asignado,
// más el responsable actual de currentStorageID (para que la edición lo conserve).
func AvailableResponsibles(users []entity.User, storages []entity.Storage, currentStorageID *int64) []entity.User {
	out := make([]entity.User, 0)
	for _, u := range users {
		if !u.IsResponsibleCandidate() {
			continue
		}
		if ResponsibleAvailable(u.ID, storages, currentStorageID) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

// StoragesForCategory almacenes activos de la categoría (selector del formulario de artículo).
func StoragesForCategory(storages []entity.Storage, categoryID int64) []entity.Storage {
	out := make([]entity.Storage, 0)
	for _, s := range storages {
		if s.Status && s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out
}
