package cache

// KeyDashboardStats holds the aggregated dashboard counters. Every write
// path that changes a counter deletes this key.
const KeyDashboardStats = "dashboard:stats"
