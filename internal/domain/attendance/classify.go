package attendance

import "time"

// DaysInMonth returns the calendar length of year/month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Cutoff is the last day of year/month that can be evaluated as of asOf.
// The running month stops at today; every other month is evaluated in full.
func Cutoff(year, month int, asOf time.Time) int {
	if asOf.Year() == year && int(asOf.Month()) == month {
		return asOf.Day()
	}
	return DaysInMonth(year, month)
}

// Classify walks days 1..cutoff in order. A weekly-off day is never checked
// against attendance or leave; otherwise presence wins over approved leave,
// and a day with neither is an absence. present and approvedLeave are keyed
// by day of month.
func Classify(year, month, cutoff int, weeklyOff time.Weekday, present, approvedLeave map[int]bool) MonthSummary {
	summary := MonthSummary{Year: year, Month: month, Cutoff: cutoff}

	for day := 1; day <= cutoff; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

		var status DayStatus
		switch {
		case date.Weekday() == weeklyOff:
			status = DayStatusWeeklyOff
			summary.WeeklyOff++
		case present[day]:
			status = DayStatusPresent
			summary.Present++
		case approvedLeave[day]:
			status = DayStatusApprovedLeave
			summary.ApprovedLeave++
		default:
			status = DayStatusAbsent
			summary.Absent++
		}

		summary.Days = append(summary.Days, Day{Date: date, Status: status})
	}

	return summary
}

// DaySet indexes dates that fall inside year/month by their day of month.
func DaySet(year, month int, dates []time.Time) map[int]bool {
	set := make(map[int]bool, len(dates))
	for _, d := range dates {
		if d.Year() == year && int(d.Month()) == month {
			set[d.Day()] = true
		}
	}
	return set
}
