// Package analytics agrega los listados del backend en los indicadores de los tableros.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
)

const (
	recentArticles    = 5  // widget "Artículos agregados"
	distributionLimit = 20 // "Top 20 categorías"
	noRole            = "Sin rol"
)

// DashboardUseCase arma los tableros del administrador y del trabajador.
//
// Fuente de datos: SnapshotSource, que consulta los listados en paralelo.
type DashboardUseCase struct {
	snapshots ports.SnapshotSource
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(snapshots ports.SnapshotSource) *DashboardUseCase {
	return &DashboardUseCase{snapshots: snapshots}
}

// Admin tablero del ADMINISTRADOR (usuarios, almacenes, categorías y artículos).
func (uc *DashboardUseCase) Admin(ctx context.Context) (*dto.AdminDashboardDTO, error) {
	snap, err := uc.snapshots.Snapshot(ctx, ports.SnapshotNeeds{Users: true, Storages: true, Categories: true, Articles: true})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	out := AdminSummary(snap)
	return &out, nil
}

// Worker tablero del TRABAJADOR (almacenes y categorías).
func (uc *DashboardUseCase) Worker(ctx context.Context) (*dto.WorkerDashboardDTO, error) {
	snap, err := uc.snapshots.Snapshot(ctx, ports.SnapshotNeeds{Storages: true, Categories: true})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	out := WorkerSummary(snap.Storages, snap.Categories)
	return &out, nil
}

// AdminSummary calcula los indicadores del administrador sobre una instantánea completa.
func AdminSummary(snap consistency.Snapshot) dto.AdminDashboardDTO {
	out := dto.AdminDashboardDTO{
		TotalUsers:         len(snap.Users),
		TotalStorages:      len(snap.Storages),
		TotalCategories:    len(snap.Categories),
		TotalArticles:      len(snap.Articles),
		ArticlesByCategory: make([]dto.CountItem, 0, len(snap.Categories)),
		StoragesByCategory: make([]dto.CountItem, 0, len(snap.Categories)),
		UsersByRole:        make([]dto.CountItem, 0),
		RecentArticles:     make([]dto.ArticleResponse, 0, recentArticles),
	}

	// ── Por categoría (todas, en el orden del backend) ────────────────────────
	for _, c := range snap.Categories {
		articles, storages := 0, 0
		for _, a := range snap.Articles {
			if a.CategoryID == c.ID {
				articles++
			}
		}
		for _, s := range snap.Storages {
			if s.CategoryID == c.ID {
				storages++
			}
		}
		out.ArticlesByCategory = append(out.ArticlesByCategory, dto.CountItem{Label: c.Name, Count: articles})
		out.StoragesByCategory = append(out.StoragesByCategory, dto.CountItem{Label: c.Name, Count: storages})
	}

	// ── Usuarios por rol ──────────────────────────────────────────────────────
	byRole := make(map[string]int)
	for _, u := range snap.Users {
		label := string(u.Role)
		if label == "" {
			label = noRole
		}
		byRole[label]++
	}
	out.UsersByRole = sortedCounts(byRole)

	// ── Estado de almacenes ───────────────────────────────────────────────────
	for _, s := range snap.Storages {
		if len(s.Articles) == 0 {
			out.EmptyStorages++
		}
		if s.HasResponsible() {
			out.AssignedStorages++
		}
	}

	// ── Artículos recientes (id desc) ─────────────────────────────────────────
	recent := append([]entity.Article(nil), snap.Articles...)
	sort.Slice(recent, func(i, j int) bool { return recent[i].ID > recent[j].ID })
	if len(recent) > recentArticles {
		recent = recent[:recentArticles]
	}
	for _, a := range recent {
		out.RecentArticles = append(out.RecentArticles, dto.NewArticleResponse(a))
	}
	return out
}

// WorkerSummary indicadores del trabajador: el total de artículos es la suma de los artículos
// de cada almacén y la distribución cuenta almacenes por categoría (top 20, mayor a menor).
func WorkerSummary(storages []entity.Storage, categories []entity.Category) dto.WorkerDashboardDTO {
	out := dto.WorkerDashboardDTO{TotalStorages: len(storages)}
	for _, s := range storages {
		out.TotalArticles += len(s.Articles)
		if s.Status {
			out.ActiveStorages++
		}
	}

	dist := make([]dto.CountItem, 0, len(categories))
	for _, c := range categories {
		n := 0
		for _, s := range storages {
			if s.CategoryID == c.ID {
				n++
			}
		}
		dist = append(dist, dto.CountItem{Label: c.Name, Count: n})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	if len(dist) > distributionLimit {
		dist = dist[:distributionLimit]
	}
	out.CategoryDistribution = dist
	return out
}

func sortedCounts(m map[string]int) []dto.CountItem {
	out := make([]dto.CountItem, 0, len(m))
	for label, n := range m {
		out = append(out, dto.CountItem{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
