package leave

type CreateLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type DecideLeaveRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

type GrantCompLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Amount     int    `json:"amount" binding:"required"`
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	RequestedAt   string  `json:"requested_at"`
	ReviewerID    *string `json:"reviewer_id,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	ReviewComment *string `json:"review_comment,omitempty"`
}

type BalanceResponse struct {
	EmployeeID       string `json:"employee_id"`
	CompLeavesEarned int    `json:"comp_leaves_earned"`
	CompLeavesUsed   int    `json:"comp_leaves_used"`
	Available        int    `json:"available"`
}
