/*
classifier.go - Notification classification

PURPOSE:
  Turns derived milestone dates into notifications relative to "today".
  Every read recomputes from scratch; nothing here is cached.

STATUS BANDS (days = DaysBetween(today, milestone)):
  days < 0                 overdue
  0 <= days <= horizon     soon
  days > horizon           future (computed, never surfaced by Classify)

ORDERING:
  Soon and Overdue are each sorted ascending by milestone date with a
  stable sort, so records sharing a date keep their input order.

SEE ALSO:
  - calculator.go: where the milestone dates come from
  - personnel/registry.go: feeds a snapshot of records into Classify
*/
package schedule

import "sort"

// DefaultHorizonDays is the "soon" window used when none is configured.
const DefaultHorizonDays = 90

// Status is the classification of a single milestone.
type Status string

const (
	StatusOverdue Status = "overdue"
	StatusSoon    Status = "soon"
	StatusFuture  Status = "future"
)

// StatusFor buckets a signed day count.
func StatusFor(daysRemaining, horizonDays int) Status {
	switch {
	case daysRemaining < 0:
		return StatusOverdue
	case daysRemaining <= horizonDays:
		return StatusSoon
	default:
		return StatusFuture
	}
}

// Schedulable is anything carrying the two derived milestone dates.
type Schedulable interface {
	ScheduleID() string
	ScheduleName() string
	ScheduleEmployeeNumber() string
	Milestone(kind MilestoneKind) Date
}

// Kinds lists the milestone kinds in the order they are evaluated per record.
var Kinds = []MilestoneKind{MilestoneSalaryIncrement, MilestoneRankPromotion}

// Notification is one (record, milestone kind) pair.
type Notification struct {
	ID             string        `json:"id"`
	RecordID       string        `json:"record_id"`
	Name           string        `json:"name"`
	EmployeeNumber string        `json:"employee_number"`
	Kind           MilestoneKind `json:"kind"`
	Date           Date          `json:"date"`
	DaysRemaining  int           `json:"days_remaining"`
	Status         Status        `json:"status"`
}

// Result holds the surfaced notifications.
type Result struct {
	Soon    []Notification `json:"soon"`
	Overdue []Notification `json:"overdue"`
}

// Counts returns the number of notifications per surfaced status.
func (r Result) Counts() map[Status]int {
	return map[Status]int{
		StatusSoon:    len(r.Soon),
		StatusOverdue: len(r.Overdue),
	}
}

func normalizeHorizon(horizonDays int) int {
	if horizonDays <= 0 {
		return DefaultHorizonDays
	}
	return horizonDays
}

// Evaluate returns every notification of one record, future ones included.
// Absent milestone dates contribute nothing.
func Evaluate(rec Schedulable, today Date, horizonDays int) []Notification {
	horizonDays = normalizeHorizon(horizonDays)

	var out []Notification
	for _, kind := range Kinds {
		date := rec.Milestone(kind)
		if date.IsZero() {
			continue
		}
		days := DaysBetween(today, date)
		out = append(out, Notification{
			ID:             rec.ScheduleID() + kind.idSuffix(),
			RecordID:       rec.ScheduleID(),
			Name:           rec.ScheduleName(),
			EmployeeNumber: rec.ScheduleEmployeeNumber(),
			Kind:           kind,
			Date:           date,
			DaysRemaining:  days,
			Status:         StatusFor(days, horizonDays),
		})
	}
	return out
}

// Classify evaluates all records against today and returns the soon and
// overdue lists, each sorted by milestone date. A horizon <= 0 means
// DefaultHorizonDays.
func Classify[R Schedulable](records []R, today Date, horizonDays int) Result {
	res := Result{
		Soon:    []Notification{},
		Overdue: []Notification{},
	}

	for _, rec := range records {
		for _, n := range Evaluate(rec, today, horizonDays) {
			switch n.Status {
			case StatusSoon:
				res.Soon = append(res.Soon, n)
			case StatusOverdue:
				res.Overdue = append(res.Overdue, n)
			}
		}
	}

	sortByDate(res.Soon)
	sortByDate(res.Overdue)
	return res
}

func sortByDate(ns []Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].Date.Before(ns[j].Date)
	})
}
