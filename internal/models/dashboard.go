package models

// DashboardStats is the combined dashboard response.
type DashboardStats struct {
	Overview   DashboardOverview   `json:"overview"`
	Challenges DashboardChallenges `json:"challenges"`
	Ratings    DashboardRatings    `json:"ratings"`
}

// DashboardOverview holds entity totals.
type DashboardOverview struct {
	TotalLecturers       int `json:"totalLecturers"`
	TotalAssignedCourses int `json:"totalAssignedCourses"`
	TotalChallenges      int `json:"totalChallenges"`
	TotalRatings         int `json:"totalRatings"`
	TotalReports         int `json:"totalReports"`
}

// DashboardChallenges breaks challenges down by status.
type DashboardChallenges struct {
	Pending  int `json:"pending"`
	Reviewed int `json:"reviewed"`
	Resolved int `json:"resolved"`
}

// DashboardRatings carries the rounded average.
type DashboardRatings struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}
