package payroll

type ProcessMonthRequest struct {
	Month string `json:"month" binding:"required"`
}

type ProcessMonthReport struct {
	Month            string            `json:"month"`
	Created          []PayrollResponse `json:"created"`
	Skipped          int               `json:"skipped"`
	NothingToProcess bool              `json:"nothing_to_process"`
}

type UpdatePayrollRequest struct {
	RegularHours  *float64 `json:"regular_hours"`
	OvertimeHours *float64 `json:"overtime_hours"`
	Status        *string  `json:"status"`
	Notes         *string  `json:"notes"`
}

type PayrollResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	Month         string  `json:"month"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	RegularPay    float64 `json:"regular_pay"`
	OvertimePay   float64 `json:"overtime_pay"`
	TotalPay      float64 `json:"total_pay"`
	Status        string  `json:"status"`
	ProcessedBy   string  `json:"processed_by"`
	ProcessedAt   string  `json:"processed_at"`
	Notes         *string `json:"notes,omitempty"`
}
