package model

// WinnerCategory tells which unit a winner's score was measured in.
type WinnerCategory string

const (
	CategoryDistance WinnerCategory = "DISTANCE" // kilometers
	CategoryTime     WinnerCategory = "TIME"     // minutes
)

// Winner is the outcome of a closed month, recorded exactly once per month key.
type Winner struct {
	MonthKey string // "YYYY-MM"
	Alias    string
	Score    float64
	Category WinnerCategory
	Profile  string
}
