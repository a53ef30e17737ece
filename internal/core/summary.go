package core

// CategoryTotal is an on-demand aggregate of expense amounts by category.
type CategoryTotal struct {
	Category string
	Total    Money
}

// MonthSummary is the derived balance view for a specific year+month.
// It is computed from base rows at read time and never persisted.
type MonthSummary struct {
	Year          int
	Month         int // 1-12
	TotalIncome   Money
	TotalExpenses Money
	Balance       Money
}
