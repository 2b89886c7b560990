package dto

// CountItem par etiqueta/valor para gráficas de barras y pastel.
type CountItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AdminDashboardDTO respuesta de GET /api/dashboard (ADMINISTRADOR).
type AdminDashboardDTO struct {
	TotalUsers      int `json:"total_users"`
	TotalStorages   int `json:"total_storages"`
	TotalCategories int `json:"total_categories"`
	TotalArticles   int `json:"total_articles"`

	ArticlesByCategory []CountItem `json:"articles_by_category"`
	StoragesByCategory []CountItem `json:"storages_by_category"`
	UsersByRole        []CountItem `json:"users_by_role"`

	EmptyStorages    int `json:"empty_storages"`    // almacenes sin artículos
	AssignedStorages int `json:"assigned_storages"` // almacenes con responsable

	RecentArticles []ArticleResponse `json:"recent_articles"` // 5 más recientes (id desc)
}

// WorkerDashboardDTO respuesta de GET /api/dashboard/worker (TRABAJADOR).
type WorkerDashboardDTO struct {
	TotalStorages        int         `json:"total_storages"`
	ActiveStorages       int         `json:"active_storages"`
	TotalArticles        int         `json:"total_articles"`
	CategoryDistribution []CountItem `json:"category_distribution"` // top 20, desc
}
