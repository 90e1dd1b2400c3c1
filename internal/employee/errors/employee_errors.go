package employeeerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of employee, manager, admin",
		http.StatusBadRequest,
	)
	ErrInvalidTarget = apperror.New(
		apperror.CodeInvalidInput,
		"monthly hour target must be one of 40, 60, 80, 100",
		http.StatusBadRequest,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"hourly rate must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidManager = apperror.New(
		apperror.CodeInvalidInput,
		"reporting manager not found",
		http.StatusBadRequest,
	)
	ErrInvalidMultiplier = apperror.New(
		apperror.CodeInvalidInput,
		"overtime multiplier must be at least 1.0",
		http.StatusBadRequest,
	)
)
