package schedule

import (
	"fmt"
	"strings"
)

// =============================================================================
// SCHEDULE CALCULATOR - Next milestone from the last granted date
// =============================================================================

// Fixed cadences. KGB (salary increment) recurs every 2 years, rank
// promotion every 4 years, counted from the last TMT.
const (
	SalaryIncrementYears = 2
	RankPromotionYears   = 4
)

// MilestoneKind identifies which recurring milestone a date belongs to.
type MilestoneKind string

const (
	MilestoneSalaryIncrement MilestoneKind = "KGB"
	MilestoneRankPromotion   MilestoneKind = "PANGKAT"
)

// Cadence returns the number of years between two milestones of this kind.
func (k MilestoneKind) Cadence() int {
	switch k {
	case MilestoneSalaryIncrement:
		return SalaryIncrementYears
	case MilestoneRankPromotion:
		return RankPromotionYears
	default:
		return 0
	}
}

// ParseMilestoneKind accepts "kgb" or "pangkat" in any case.
func ParseMilestoneKind(s string) (MilestoneKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(MilestoneSalaryIncrement):
		return MilestoneSalaryIncrement, nil
	case string(MilestoneRankPromotion):
		return MilestoneRankPromotion, nil
	default:
		return "", fmt.Errorf("unknown milestone kind %q (use kgb or pangkat)", s)
	}
}

// idSuffix is appended to the record ID to form a notification ID.
func (k MilestoneKind) idSuffix() string {
	switch k {
	case MilestoneSalaryIncrement:
		return "-kgb"
	case MilestoneRankPromotion:
		return "-pangkat"
	default:
		return "-" + string(k)
	}
}

// ComputeNextDate returns anchor + yearsToAdd years, or the absent date when
// the anchor is absent. It does not look at the clock.
func ComputeNextDate(anchor Date, yearsToAdd int) Date {
	if anchor.IsZero() {
		return Date{}
	}
	return anchor.AddYears(yearsToAdd)
}

// NextSalaryIncrement is ComputeNextDate with the KGB cadence.
func NextSalaryIncrement(lastIncrement Date) Date {
	return ComputeNextDate(lastIncrement, SalaryIncrementYears)
}

// NextRankPromotion is ComputeNextDate with the rank promotion cadence.
func NextRankPromotion(lastPromotion Date) Date {
	return ComputeNextDate(lastPromotion, RankPromotionYears)
}
