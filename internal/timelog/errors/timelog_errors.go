package timelogerrors

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
	ErrInvalidDay = apperror.New(
		apperror.CodeInvalidInput,
		"invalid day format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateCheckIn = apperror.New(
		apperror.CodeConflict,
		"already checked in for this day",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeConflict,
		"no check-in found for this day",
		http.StatusConflict,
	)
	ErrAlreadyOnBreak = apperror.New(
		apperror.CodeConflict,
		"a break is already open",
		http.StatusConflict,
	)
	ErrNoActiveBreak = apperror.New(
		apperror.CodeConflict,
		"no open break to end",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"already checked out for this day",
		http.StatusConflict,
	)
	ErrTasksRequired = apperror.New(
		apperror.CodePrecondition,
		"at least one task must be logged before checking out",
		http.StatusUnprocessableEntity,
	)
)
