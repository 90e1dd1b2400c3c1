package employee

type CreateEmployeeRequest struct {
	FullName          string  `json:"full_name" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	Password          string  `json:"password" binding:"required,min=8"`
	Role              string  `json:"role" binding:"required"`
	ManagerID         *string `json:"manager_id"`
	MonthlyHourTarget int     `json:"monthly_hour_target" binding:"required"`
	HourlyRate        int64   `json:"hourly_rate" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName          *string `json:"full_name"`
	Role              *string `json:"role"`
	ManagerID         *string `json:"manager_id"`
	ClearManager      bool    `json:"clear_manager"`
	MonthlyHourTarget *int    `json:"monthly_hour_target"`
	HourlyRate        *int64  `json:"hourly_rate"`
}

type UpdateMultiplierRequest struct {
	OvertimeMultiplier float64 `json:"overtime_multiplier" binding:"required"`
}

type EmployeeResponse struct {
	ID                 string  `json:"id"`
	FullName           string  `json:"full_name"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	ManagerID          *string `json:"manager_id,omitempty"`
	MonthlyHourTarget  int     `json:"monthly_hour_target"`
	HourlyRate         int64   `json:"hourly_rate"`
	CompLeavesEarned   int     `json:"comp_leaves_earned"`
	CompLeavesUsed     int     `json:"comp_leaves_used"`
	OvertimeMultiplier float64 `json:"overtime_multiplier"`
	CreatedAt          string  `json:"created_at"`
}
