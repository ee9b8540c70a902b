package parking

import (
	"fmt"
	"math"
	"time"

	"conjunto/models"
)

// ComputeFee calculates the visitor parking fee for a stay between entry and
// exit under the given tariff. Any portion of a minute or hour counts as a
// whole one; the grace period is inclusive, the hourly tier ceiling is the
// last elapsed hour still billed per hour, and stays longer than one billable
// day are charged per full day with the remainder re-entering the schedule
// with its own grace and tiers.
func ComputeFee(entry, exit time.Time, t models.Tariff) (models.FeeResult, error) {
	if exit.Before(entry) {
		return models.FeeResult{}, newError(CodeInvalidInterval,
			"exit time %s is before entry time %s", exit.Format(time.RFC3339), entry.Format(time.RFC3339))
	}

	elapsedMinutes := int(math.Ceil(exit.Sub(entry).Minutes()))
	elapsedHours := (elapsedMinutes + 59) / 60

	fee, breakdown := feeForHours(elapsedHours, t)
	return models.FeeResult{
		ElapsedMinutes: elapsedMinutes,
		ElapsedHours:   elapsedHours,
		Fee:            fee,
		Breakdown:      breakdown,
	}, nil
}

// feeForHours applies the tariff schedule to a whole-hour duration. It calls
// itself once for the remainder of a multi-day stay.
func feeForHours(hours int, t models.Tariff) (int64, string) {
	graceHours := t.FreeMinutes / 60

	switch {
	case hours <= graceHours:
		return 0, fmt.Sprintf("%d hour(s) - grace period, no charge", hours)

	case hours <= t.HourlyTierCeilingHours:
		billable := hours - graceHours
		return int64(billable) * t.HourlyRate,
			fmt.Sprintf("%d hour(s) grace + %d billable hour(s) x $%d", graceHours, billable, t.HourlyRate)

	case hours <= t.DayLengthHours:
		return t.DailyRate,
			fmt.Sprintf("over %d hours - flat one-day rate $%d", t.HourlyTierCeilingHours, t.DailyRate)

	default:
		fullDays := hours / t.DayLengthHours
		remainder := hours % t.DayLengthHours
		fee := int64(fullDays) * t.DailyRate
		breakdown := fmt.Sprintf("%d day(s) x $%d", fullDays, t.DailyRate)
		if remainder > 0 {
			remainderFee, remainderDetail := feeForHours(remainder, t)
			fee += remainderFee
			breakdown += " + " + remainderDetail
		}
		return fee, breakdown
	}
}
