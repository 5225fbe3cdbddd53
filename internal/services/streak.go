package services

import "time"

// NextStreak applies one completion at now to a habit's streak. Calendar
// days are evaluated in loc.
//
//   - never completed before: the streak starts at 1
//   - already completed today, or lastCompleted lies in the future: unchanged
//   - last completed yesterday: streak + 1
//   - any longer gap: the streak restarts at 1
//
// The habit is always completed afterwards.
func NextStreak(streak int, lastCompleted *time.Time, now time.Time, loc *time.Location) (int, bool) {
	if lastCompleted == nil {
		return 1, true
	}

	switch days := daysBetween(*lastCompleted, now, loc); {
	case days <= 0:
		if streak < 1 {
			streak = 1
		}
		return streak, true
	case days == 1:
		return streak + 1, true
	default:
		return 1, true
	}
}

// DecayStreak reports the state a habit should have at now when nobody has
// completed it since lastCompleted: the completed flag clears on a new day
// and the streak drops to zero once a whole day has been missed.
func DecayStreak(streak int, completed bool, lastCompleted *time.Time, now time.Time, loc *time.Location) (int, bool) {
	if lastCompleted == nil {
		return 0, false
	}

	days := daysBetween(*lastCompleted, now, loc)
	if days >= 1 {
		completed = false
	}
	if days >= 2 {
		streak = 0
	}
	return streak, completed
}

// daysBetween counts calendar-day boundaries from a to b in loc.
func daysBetween(a, b time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
