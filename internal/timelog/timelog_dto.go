package timelog

type ClockRequest struct {
	// Day defaults to today (UTC) when omitted.
	Day string `json:"day"`
}

type BreakResponse struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type TimeLogResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Day          string          `json:"day"`
	CheckIn      string          `json:"check_in"`
	CheckOut     *string         `json:"check_out,omitempty"`
	Breaks       []BreakResponse `json:"breaks,omitempty"`
	TotalHours   float64         `json:"total_hours"`
	HoursSoFar   float64         `json:"hours_so_far"`
	Status       string          `json:"status"`
	EmployeeName string          `json:"employee_name,omitempty"`
}
