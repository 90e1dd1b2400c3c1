package state

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// Monthly hour targets form a fixed tier set; the top tier carries a
// higher default overtime multiplier.
var MonthlyTargets = []int{40, 60, 80, 100}

const MaxMonthlyTarget = 100

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

const (
	TimeLogCheckedIn  = "CHECKED_IN"
	TimeLogCheckedOut = "CHECKED_OUT"
	// TimeLogIncomplete is reserved for entries whose check-out was never
	// set by end of day. Nothing transitions into it yet; a future
	// day-rollover job owns that.
	TimeLogIncomplete = "INCOMPLETE"
)

const (
	TaskPending   = "PENDING"
	TaskApproved  = "APPROVED"
	TaskCommented = "COMMENTED"
)

const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

const (
	PayrollPending  = "PENDING"
	PayrollApproved = "APPROVED"
	PayrollPaid     = "PAID"
)

type Employee struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	// Password holds either a bcrypt hash or a legacy plaintext value
	// carried over from older documents.
	Password          string     `json:"password"`
	Role              string     `json:"role"`
	ManagerID         *uuid.UUID `json:"manager_id,omitempty"`
	MonthlyHourTarget int        `json:"monthly_hour_target"`
	HourlyRate        int64      `json:"hourly_rate"`
	CompLeavesEarned  int        `json:"comp_leaves_earned"`
	CompLeavesUsed    int        `json:"comp_leaves_used"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// CompLeavesAvailable is the earned minus used balance.
func (e Employee) CompLeavesAvailable() int {
	return e.CompLeavesEarned - e.CompLeavesUsed
}

type BreakInterval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

type TimeLogEntry struct {
	ID         uuid.UUID       `json:"id"`
	EmployeeID uuid.UUID       `json:"employee_id"`
	Day        string          `json:"day"`
	CheckIn    time.Time       `json:"check_in"`
	CheckOut   *time.Time      `json:"check_out,omitempty"`
	Breaks     []BreakInterval `json:"breaks,omitempty"`
	// TotalHours is only authoritative once CheckOut is set; while the
	// entry is open, live hours come from timelog.HoursWorkedSoFar.
	TotalHours float64 `json:"total_hours"`
	Status     string  `json:"status"`
}

// OpenBreak returns the index of the currently open break, -1 if none.
func (t TimeLogEntry) OpenBreak() int {
	for i := len(t.Breaks) - 1; i >= 0; i-- {
		if t.Breaks[i].End == nil {
			return i
		}
	}
	return -1
}

type TaskEntry struct {
	ID            uuid.UUID  `json:"id"`
	EmployeeID    uuid.UUID  `json:"employee_id"`
	Day           string     `json:"day"`
	Description   string     `json:"description"`
	Hours         float64    `json:"hours"`
	Status        string     `json:"status"`
	ReviewerID    *uuid.UUID `json:"reviewer_id,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewComment *string    `json:"review_comment,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type LeaveRequest struct {
	ID            uuid.UUID  `json:"id"`
	EmployeeID    uuid.UUID  `json:"employee_id"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	RequestedAt   time.Time  `json:"requested_at"`
	ReviewerID    *uuid.UUID `json:"reviewer_id,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewComment *string    `json:"review_comment,omitempty"`
}

type PayrollEntry struct {
	ID            uuid.UUID `json:"id"`
	EmployeeID    uuid.UUID `json:"employee_id"`
	Month         string    `json:"month"`
	RegularHours  float64   `json:"regular_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
	RegularPay    float64   `json:"regular_pay"`
	OvertimePay   float64   `json:"overtime_pay"`
	TotalPay      float64   `json:"total_pay"`
	Status        string    `json:"status"`
	ProcessedBy   uuid.UUID `json:"processed_by"`
	ProcessedAt   time.Time `json:"processed_at"`
	Notes         *string   `json:"notes,omitempty"`
}

type OvertimeSettings struct {
	EmployeeID         uuid.UUID `json:"employee_id"`
	OvertimeMultiplier float64   `json:"overtime_multiplier"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type AuditLogEntry struct {
	ID          uuid.UUID       `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	ActorID     uuid.UUID       `json:"actor_id"`
	ActorName   string          `json:"actor_name"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Description string          `json:"description"`
	Before      json.RawMessage `json:"before,omitempty"`
	After       json.RawMessage `json:"after,omitempty"`
}

// HRMState is the aggregate root and the sole unit of persistence: the
// whole document travels to and from the store as one JSON value.
type HRMState struct {
	Employees        []Employee         `json:"employees"`
	TimeLogs         []TimeLogEntry     `json:"time_logs"`
	Tasks            []TaskEntry        `json:"tasks"`
	LeaveRequests    []LeaveRequest     `json:"leave_requests"`
	PayrollEntries   []PayrollEntry     `json:"payroll_entries"`
	OvertimeSettings []OvertimeSettings `json:"overtime_settings"`
	AuditLog         []AuditLogEntry    `json:"audit_log"`
	CurrentUserID    *uuid.UUID         `json:"current_user_id,omitempty"`
}

// NewState returns an empty aggregate with all collections allocated.
func NewState() *HRMState {
	return &HRMState{
		Employees:        []Employee{},
		TimeLogs:         []TimeLogEntry{},
		Tasks:            []TaskEntry{},
		LeaveRequests:    []LeaveRequest{},
		PayrollEntries:   []PayrollEntry{},
		OvertimeSettings: []OvertimeSettings{},
		AuditLog:         []AuditLogEntry{},
	}
}

// Encode serializes the aggregate to its canonical document form. Sync
// uses byte equality of this encoding to detect remote changes.
func (s *HRMState) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses a document previously produced by Encode.
func Decode(data []byte) (*HRMState, error) {
	var st HRMState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *HRMState) EmployeeByID(id uuid.UUID) *Employee {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i]
		}
	}
	return nil
}

func (s *HRMState) EmployeeByEmail(email string) *Employee {
	for i := range s.Employees {
		if s.Employees[i].Email == email {
			return &s.Employees[i]
		}
	}
	return nil
}

func (s *HRMState) TimeLogFor(employeeID uuid.UUID, day string) *TimeLogEntry {
	for i := range s.TimeLogs {
		if s.TimeLogs[i].EmployeeID == employeeID && s.TimeLogs[i].Day == day {
			return &s.TimeLogs[i]
		}
	}
	return nil
}

func (s *HRMState) TasksFor(employeeID uuid.UUID, day string) []TaskEntry {
	var out []TaskEntry
	for _, t := range s.Tasks {
		if t.EmployeeID == employeeID && t.Day == day {
			out = append(out, t)
		}
	}
	return out
}

func (s *HRMState) TaskByID(id uuid.UUID) *TaskEntry {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

func (s *HRMState) LeaveByID(id uuid.UUID) *LeaveRequest {
	for i := range s.LeaveRequests {
		if s.LeaveRequests[i].ID == id {
			return &s.LeaveRequests[i]
		}
	}
	return nil
}

func (s *HRMState) PayrollFor(employeeID uuid.UUID, month string) *PayrollEntry {
	for i := range s.PayrollEntries {
		if s.PayrollEntries[i].EmployeeID == employeeID && s.PayrollEntries[i].Month == month {
			return &s.PayrollEntries[i]
		}
	}
	return nil
}

func (s *HRMState) PayrollByID(id uuid.UUID) *PayrollEntry {
	for i := range s.PayrollEntries {
		if s.PayrollEntries[i].ID == id {
			return &s.PayrollEntries[i]
		}
	}
	return nil
}

func (s *HRMState) OvertimeFor(employeeID uuid.UUID) *OvertimeSettings {
	for i := range s.OvertimeSettings {
		if s.OvertimeSettings[i].EmployeeID == employeeID {
			return &s.OvertimeSettings[i]
		}
	}
	return nil
}

// Clone deep-copies the aggregate so transformation functions can work on
// a private copy and commit by pointer swap.
func (s *HRMState) Clone() *HRMState {
	out := &HRMState{
		Employees:        make([]Employee, len(s.Employees)),
		TimeLogs:         make([]TimeLogEntry, len(s.TimeLogs)),
		Tasks:            make([]TaskEntry, len(s.Tasks)),
		LeaveRequests:    make([]LeaveRequest, len(s.LeaveRequests)),
		PayrollEntries:   make([]PayrollEntry, len(s.PayrollEntries)),
		OvertimeSettings: make([]OvertimeSettings, len(s.OvertimeSettings)),
		AuditLog:         make([]AuditLogEntry, len(s.AuditLog)),
	}

	for i, e := range s.Employees {
		e.ManagerID = cloneUUIDPtr(e.ManagerID)
		out.Employees[i] = e
	}
	for i, t := range s.TimeLogs {
		t.CheckOut = cloneTimePtr(t.CheckOut)
		breaks := make([]BreakInterval, len(t.Breaks))
		for j, b := range t.Breaks {
			b.End = cloneTimePtr(b.End)
			breaks[j] = b
		}
		t.Breaks = breaks
		out.TimeLogs[i] = t
	}
	for i, t := range s.Tasks {
		t.ReviewerID = cloneUUIDPtr(t.ReviewerID)
		t.ReviewedAt = cloneTimePtr(t.ReviewedAt)
		t.ReviewComment = cloneStringPtr(t.ReviewComment)
		out.Tasks[i] = t
	}
	for i, l := range s.LeaveRequests {
		l.ReviewerID = cloneUUIDPtr(l.ReviewerID)
		l.ReviewedAt = cloneTimePtr(l.ReviewedAt)
		l.ReviewComment = cloneStringPtr(l.ReviewComment)
		out.LeaveRequests[i] = l
	}
	for i, p := range s.PayrollEntries {
		p.Notes = cloneStringPtr(p.Notes)
		out.PayrollEntries[i] = p
	}
	copy(out.OvertimeSettings, s.OvertimeSettings)
	for i, a := range s.AuditLog {
		a.Before = cloneRaw(a.Before)
		a.After = cloneRaw(a.After)
		out.AuditLog[i] = a
	}
	out.CurrentUserID = cloneUUIDPtr(s.CurrentUserID)

	return out
}

func cloneUUIDPtr(p *uuid.UUID) *uuid.UUID {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneRaw(b json.RawMessage) json.RawMessage {
	if b == nil {
		return nil
	}
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}
