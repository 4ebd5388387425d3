/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's internal model from the external API contract: decimal hour
  values become rounded floats, instants become RFC3339 strings carrying
  the business-zone offset, and minute counts gain formatted companions.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - report: The engine output these map from
*/
package api

import (
	"time"

	"github.com/lengolf/timeclock-engine/engine"
	"github.com/lengolf/timeclock-engine/report"
	"github.com/lengolf/timeclock-engine/store/sqlite"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RulesDTO is the read-only business rules snapshot shown by the UI.
type RulesDTO struct {
	BreakEligibleMinutes  int  `json:"break_eligible_minutes"`
	BreakDeductionMinutes int  `json:"break_deduction_minutes"`
	DailyRegularMinutes   int  `json:"daily_regular_minutes"`
	SingleOpenShift       bool `json:"single_open_shift"`
}

// ShiftDTO is one reconstructed shift. Incomplete and flagged shifts are
// serialized like any other - data completeness problems must stay visible
// in the payload, never filtered out.
type ShiftDTO struct {
	StaffID         string   `json:"staff_id"`
	StaffName       string   `json:"staff_name"`
	AnchorDate      string   `json:"anchor_date"`
	ClockIn         string   `json:"clock_in"`
	ClockOut        *string  `json:"clock_out,omitempty"`
	ClockInEventID  string   `json:"clock_in_event_id"`
	ClockOutEventID string   `json:"clock_out_event_id,omitempty"`
	RawMinutes      int      `json:"raw_minutes"`
	BreakMinutes    int      `json:"break_minutes"`
	NetMinutes      int      `json:"net_minutes"`
	RegularMinutes  int      `json:"regular_minutes"`
	OvertimeMinutes int      `json:"overtime_minutes"`
	NetDuration     string   `json:"net_duration"`
	IsComplete      bool     `json:"is_complete"`
	CrossesMidnight bool     `json:"crosses_midnight"`
	Notes           []string `json:"notes,omitempty"`
	Issues          []string `json:"issues,omitempty"`
}

// AnalyticsDTO is one staff member's window summary.
type AnalyticsDTO struct {
	StaffID             string  `json:"staff_id"`
	StaffName           string  `json:"staff_name"`
	DaysWorked          int     `json:"days_worked"`
	TotalShifts         int     `json:"total_shifts"`
	CompleteShifts      int     `json:"complete_shifts"`
	IncompleteShifts    int     `json:"incomplete_shifts"`
	ShiftsWithIssues    int     `json:"shifts_with_issues"`
	TotalHours          float64 `json:"total_hours"`
	RegularHours        float64 `json:"regular_hours"`
	OvertimeHours       float64 `json:"overtime_hours"`
	AverageShiftHours   float64 `json:"average_shift_hours"`
	LongestShiftHours   float64 `json:"longest_shift_hours"`
	ShortestShiftHours  float64 `json:"shortest_shift_hours"`
	TotalBreakMinutes   int     `json:"total_break_minutes"`
	TotalBreakDuration  string  `json:"total_break_duration"`
	PhotoComplianceRate float64 `json:"photo_compliance_rate"`
}

// AnomalyDTO is a structural anomaly with no shift to attach to.
type AnomalyDTO struct {
	Kind      string `json:"kind"`
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	EventID   string `json:"event_id"`
	At        string `json:"at"`
	Detail    string `json:"detail"`
}

// IssueDTO is an event excluded during normalization.
type IssueDTO struct {
	EventID string `json:"event_id"`
	StaffID string `json:"staff_id"`
	Reason  string `json:"reason"`
}

// ReportDTO is the full report payload.
type ReportDTO struct {
	WindowStart string         `json:"window_start"`
	WindowEnd   string         `json:"window_end"`
	GeneratedAt string         `json:"generated_at"`
	Rules       RulesDTO       `json:"rules"`
	Shifts      []ShiftDTO     `json:"shifts"`
	Analytics   []AnalyticsDTO `json:"analytics"`
	Anomalies   []AnomalyDTO   `json:"anomalies"`
	Issues      []IssueDTO     `json:"issues"`
}

// StaffDTO is one staff directory entry derived from the event log.
type StaffDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EventCount int    `json:"event_count"`
	LastSeen   string `json:"last_seen,omitempty"`
}

// ScenarioDTO describes one demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a demo scenario to seed.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toRulesDTO(r engine.Rules) RulesDTO {
	return RulesDTO{
		BreakEligibleMinutes:  r.BreakEligibleMinutes,
		BreakDeductionMinutes: r.BreakDeductionMinutes,
		DailyRegularMinutes:   r.DailyRegularMinutes,
		SingleOpenShift:       r.SingleOpenShift,
	}
}

func toShiftDTO(s *engine.WorkShift) ShiftDTO {
	dto := ShiftDTO{
		StaffID:         string(s.StaffID),
		StaffName:       s.StaffName,
		AnchorDate:      s.AnchorDate.String(),
		ClockIn:         s.ClockIn.Format(time.RFC3339),
		ClockInEventID:  string(s.ClockInEventID),
		ClockOutEventID: string(s.ClockOutEventID),
		RawMinutes:      s.RawMinutes,
		BreakMinutes:    s.BreakMinutes,
		NetMinutes:      s.NetMinutes,
		RegularMinutes:  s.RegularMinutes(),
		OvertimeMinutes: s.OvertimeMinutes,
		NetDuration:     engine.FormatDuration(s.NetMinutes),
		IsComplete:      s.IsComplete,
		CrossesMidnight: s.CrossesMidnight,
		Notes:           s.Notes,
		Issues:          s.Issues,
	}
	if s.ClockOut != nil {
		out := s.ClockOut.Format(time.RFC3339)
		dto.ClockOut = &out
	}
	return dto
}

func toAnalyticsDTO(a *engine.StaffTimeAnalytics) AnalyticsDTO {
	return AnalyticsDTO{
		StaffID:             string(a.StaffID),
		StaffName:           a.StaffName,
		DaysWorked:          a.DaysWorked,
		TotalShifts:         a.TotalShifts,
		CompleteShifts:      a.CompleteShifts,
		IncompleteShifts:    a.IncompleteShifts,
		ShiftsWithIssues:    a.ShiftsWithIssues,
		TotalHours:          a.TotalHours.Round(2).InexactFloat64(),
		RegularHours:        a.RegularHours.Round(2).InexactFloat64(),
		OvertimeHours:       a.OvertimeHours.Round(2).InexactFloat64(),
		AverageShiftHours:   a.AverageShiftHours.Round(2).InexactFloat64(),
		LongestShiftHours:   a.LongestShiftHours.Round(2).InexactFloat64(),
		ShortestShiftHours:  a.ShortestShiftHours.Round(2).InexactFloat64(),
		TotalBreakMinutes:   a.TotalBreakMinutes,
		TotalBreakDuration:  engine.FormatDuration(a.TotalBreakMinutes),
		PhotoComplianceRate: a.PhotoComplianceRate.Round(1).InexactFloat64(),
	}
}

func toReportDTO(rep *report.Report) ReportDTO {
	dto := ReportDTO{
		WindowStart: rep.Window.Start.Format(time.RFC3339),
		WindowEnd:   rep.Window.End.Format(time.RFC3339),
		GeneratedAt: rep.GeneratedAt.Format(time.RFC3339),
		Rules:       toRulesDTO(rep.Rules),
		Shifts:      make([]ShiftDTO, len(rep.Shifts)),
		Analytics:   make([]AnalyticsDTO, len(rep.Analytics)),
		Anomalies:   make([]AnomalyDTO, len(rep.Anomalies)),
		Issues:      make([]IssueDTO, len(rep.Issues)),
	}
	for i := range rep.Shifts {
		dto.Shifts[i] = toShiftDTO(&rep.Shifts[i])
	}
	for i := range rep.Analytics {
		dto.Analytics[i] = toAnalyticsDTO(&rep.Analytics[i])
	}
	for i, an := range rep.Anomalies {
		dto.Anomalies[i] = AnomalyDTO{
			Kind:      string(an.Kind),
			StaffID:   string(an.StaffID),
			StaffName: an.StaffName,
			EventID:   string(an.EventID),
			At:        an.At.Format(time.RFC3339),
			Detail:    an.Detail,
		}
	}
	for i, is := range rep.Issues {
		dto.Issues[i] = IssueDTO{
			EventID: string(is.EventID),
			StaffID: string(is.StaffID),
			Reason:  is.Reason,
		}
	}
	return dto
}

func toStaffDTO(rec sqlite.StaffRecord) StaffDTO {
	dto := StaffDTO{
		ID:         string(rec.ID),
		Name:       rec.Name,
		EventCount: rec.EventCount,
	}
	if !rec.LastSeen.IsZero() {
		dto.LastSeen = rec.LastSeen.Format(time.RFC3339)
	}
	return dto
}
