package task

type AddTaskRequest struct {
	Day         string  `json:"day"`
	Description string  `json:"description" binding:"required"`
	Hours       float64 `json:"hours" binding:"required"`
}

type ReviewRequest struct {
	Comment string `json:"comment"`
}

type TaskResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	Day           string  `json:"day"`
	Description   string  `json:"description"`
	Hours         float64 `json:"hours"`
	Status        string  `json:"status"`
	ReviewerID    *string `json:"reviewer_id,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	ReviewComment *string `json:"review_comment,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
