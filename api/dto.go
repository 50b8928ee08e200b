/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. The API speaks
  snake_case English; the persisted/exported document keeps the browser
  application's keys (see personnel/codec.go). These types decouple the two.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done by personnel.ValidationPolicy inside the Registry,
  not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/asn-monitor/personnel"
	"github.com/warp/asn-monitor/schedule"
)

// =============================================================================
// RECORDS
// =============================================================================

// RecordDTO represents a personnel record in API responses.
type RecordDTO struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	EmployeeNumber          string `json:"employee_number"`
	Phone                   string `json:"phone"`
	CivilServiceStartDate   string `json:"civil_service_start_date"`
	LastSalaryIncrementDate string `json:"last_salary_increment_date"`
	LastRankPromotionDate   string `json:"last_rank_promotion_date"`
	NextSalaryIncrementDate string `json:"next_salary_increment_date"`
	NextRankPromotionDate   string `json:"next_rank_promotion_date"`
	CreatedAt               string `json:"created_at,omitempty"`
}

// CreateRecordRequest is the request to add a record. Dates are YYYY-MM-DD.
type CreateRecordRequest struct {
	Name                    string `json:"name"`
	EmployeeNumber          string `json:"employee_number"`
	Phone                   string `json:"phone"`
	CivilServiceStartDate   string `json:"civil_service_start_date"`
	LastSalaryIncrementDate string `json:"last_salary_increment_date"`
	LastRankPromotionDate   string `json:"last_rank_promotion_date"`
}

func (r CreateRecordRequest) toInput() personnel.Input {
	return personnel.Input{
		Name:                    r.Name,
		EmployeeNumber:          r.EmployeeNumber,
		Phone:                   r.Phone,
		CivilServiceStartDate:   r.CivilServiceStartDate,
		LastSalaryIncrementDate: r.LastSalaryIncrementDate,
		LastRankPromotionDate:   r.LastRankPromotionDate,
	}
}

// RecordDetailDTO is a record with every milestone, future ones included.
type RecordDetailDTO struct {
	Record     RecordDTO               `json:"record"`
	Milestones []schedule.Notification `json:"milestones"`
}

func toRecordDTO(r personnel.Record) RecordDTO {
	dto := RecordDTO{
		ID:                      r.ID,
		Name:                    r.Name,
		EmployeeNumber:          r.EmployeeNumber,
		Phone:                   r.Phone,
		CivilServiceStartDate:   r.CivilServiceStartDate.String(),
		LastSalaryIncrementDate: r.LastSalaryIncrementDate.String(),
		LastRankPromotionDate:   r.LastRankPromotionDate.String(),
		NextSalaryIncrementDate: r.NextSalaryIncrementDate.String(),
		NextRankPromotionDate:   r.NextRankPromotionDate.String(),
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toRecordDTOs(records []personnel.Record) []RecordDTO {
	dtos := make([]RecordDTO, len(records))
	for i, r := range records {
		dtos[i] = toRecordDTO(r)
	}
	return dtos
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// NotificationsResponse wraps the classifier result with its inputs.
type NotificationsResponse struct {
	AsOf        string                  `json:"as_of"`
	HorizonDays int                     `json:"horizon_days"`
	Soon        []schedule.Notification `json:"soon"`
	Overdue     []schedule.Notification `json:"overdue"`
}

// =============================================================================
// BULK / ADMIN
// =============================================================================

// ImportResponse reports a successful import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// RecomputeResponse reports how many records had stale derived dates.
type RecomputeResponse struct {
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// LoadScenarioResponse reports what a scenario loaded.
type LoadScenarioResponse struct {
	ScenarioID string `json:"scenario_id"`
	Records    int    `json:"records"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}
