package employeeerrors

import (
	"go-hrm/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeRowAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee record already exists for this account",
		http.StatusConflict,
	)
	ErrInvalidPayRate = apperror.New(
		apperror.CodeInvalidInput,
		"Pay rate must be a number",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
