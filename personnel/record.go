/*
Package personnel holds the ASN record set and everything that mutates it.

PURPOSE:
  Owns the PersonnelRecord model, entry validation, the persisted JSON
  document format and the Registry that guards the record collection.
  Date math and classification live in package schedule; this package
  only decides WHEN derived dates are refreshed and WHAT gets persisted.

KEY CONCEPTS IN THIS FILE (record.go):
  - Record: one tracked civil servant
  - Input: the fields an operator types in when adding a record
  - Refresh: recomputes the derived milestone dates from their anchors

INVARIANT:
  NextSalaryIncrementDate == LastSalaryIncrementDate + 2 years and
  NextRankPromotionDate == LastRankPromotionDate + 4 years for every record
  created through the Registry. Imported records are trusted as given
  unless the registry is configured to recompute on import.

SEE ALSO:
  - registry.go: collection operations
  - codec.go: persisted/exported JSON document
  - schedule/calculator.go: ComputeNextDate
*/
package personnel

import (
	"time"

	"github.com/warp/asn-monitor/schedule"
)

// =============================================================================
// RECORD
// =============================================================================

// Record is one tracked employee.
type Record struct {
	ID             string
	Name           string
	EmployeeNumber string // NIP
	Phone          string

	CivilServiceStartDate   schedule.Date // TMT PNS, informational only
	LastSalaryIncrementDate schedule.Date // last KGB TMT
	LastRankPromotionDate   schedule.Date // last rank TMT

	// Derived
	NextSalaryIncrementDate schedule.Date
	NextRankPromotionDate   schedule.Date

	CreatedAt time.Time
}

// Refresh recomputes the derived dates from the anchors.
func (r *Record) Refresh() {
	r.NextSalaryIncrementDate = schedule.NextSalaryIncrement(r.LastSalaryIncrementDate)
	r.NextRankPromotionDate = schedule.NextRankPromotion(r.LastRankPromotionDate)
}

// IsConsistent reports whether the derived dates match their anchors.
func (r Record) IsConsistent() bool {
	return r.NextSalaryIncrementDate.Equal(schedule.NextSalaryIncrement(r.LastSalaryIncrementDate)) &&
		r.NextRankPromotionDate.Equal(schedule.NextRankPromotion(r.LastRankPromotionDate))
}

// schedule.Schedulable

func (r Record) ScheduleID() string             { return r.ID }
func (r Record) ScheduleName() string           { return r.Name }
func (r Record) ScheduleEmployeeNumber() string { return r.EmployeeNumber }

func (r Record) Milestone(kind schedule.MilestoneKind) schedule.Date {
	switch kind {
	case schedule.MilestoneSalaryIncrement:
		return r.NextSalaryIncrementDate
	case schedule.MilestoneRankPromotion:
		return r.NextRankPromotionDate
	default:
		return schedule.Date{}
	}
}

// =============================================================================
// INPUT - What the operator enters
// =============================================================================

// Input carries the raw text fields of a new record. Dates are YYYY-MM-DD;
// empty or unparseable dates are stored as absent.
type Input struct {
	Name                    string
	EmployeeNumber          string
	Phone                   string
	CivilServiceStartDate   string
	LastSalaryIncrementDate string
	LastRankPromotionDate   string
}

// toRecord converts input text to a record without ID, timestamp or derived dates.
func (in Input) toRecord() Record {
	parse := func(s string) schedule.Date {
		d, _ := schedule.ParseDate(s)
		return d
	}
	return Record{
		Name:                    in.Name,
		EmployeeNumber:          in.EmployeeNumber,
		Phone:                   in.Phone,
		CivilServiceStartDate:   parse(in.CivilServiceStartDate),
		LastSalaryIncrementDate: parse(in.LastSalaryIncrementDate),
		LastRankPromotionDate:   parse(in.LastRankPromotionDate),
	}
}
