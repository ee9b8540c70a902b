package models

// Tariff holds the visitor parking fee schedule. The administration can adjust
// it at runtime; the calculator never assumes the default values.
type Tariff struct {
	FreeMinutes            int   `bson:"free_minutes" json:"freeMinutes"`                       // Grace period, not charged
	HourlyRate             int64 `bson:"hourly_rate" json:"hourlyRate"`                         // Per billable hour beyond grace
	HourlyTierCeilingHours int   `bson:"hourly_tier_ceiling_hours" json:"hourlyTierCeilingHours"` // Total elapsed hours still billed per hour
	DailyRate              int64 `bson:"daily_rate" json:"dailyRate"`                           // Flat charge once past the hourly tier
	DayLengthHours         int   `bson:"day_length_hours" json:"dayLengthHours"`                // Hours constituting one billable day
}

// DefaultTariff returns the fee schedule used when the administration has not
// configured one: 2h grace, $3,000/hour up to 9 elapsed hours, $16,000 per day.
func DefaultTariff() Tariff {
	return Tariff{
		FreeMinutes:            120,
		HourlyRate:             3000,
		HourlyTierCeilingHours: 9,
		DailyRate:              16000,
		DayLengthHours:         24,
	}
}

// FeeResult is the outcome of a fee computation for a completed stay.
type FeeResult struct {
	ElapsedMinutes int    `json:"elapsedMinutes"`
	ElapsedHours   int    `json:"elapsedHours"`
	Fee            int64  `json:"fee"`
	Breakdown      string `json:"breakdown"`
}
