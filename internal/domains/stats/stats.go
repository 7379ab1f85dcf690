package stats

// DashboardStats are the homepage counters. All four are derived aggregates,
// recomputed from the store (never persisted).
type DashboardStats struct {
	TotalBooks     int `json:"total_books"`
	TotalAvailable int `json:"total_available"`
	TotalReaders   int `json:"total_readers"`
	ActiveLoans    int `json:"active_loans"`
}
