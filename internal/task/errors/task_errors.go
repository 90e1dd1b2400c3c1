package taskerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidTask = apperror.New(
		apperror.CodeInvalidInput,
		"task needs a description and hours greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task id",
		http.StatusBadRequest,
	)
	ErrInvalidDay = apperror.New(
		apperror.CodeInvalidInput,
		"invalid day format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrTaskLocked = apperror.New(
		apperror.CodeConflict,
		"task has been reviewed and can no longer be deleted",
		http.StatusConflict,
	)
	ErrNotPending = apperror.New(
		apperror.CodeConflict,
		"task has already been reviewed",
		http.StatusConflict,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a comment is required",
		http.StatusBadRequest,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the task owner may delete it",
		http.StatusForbidden,
	)
)
