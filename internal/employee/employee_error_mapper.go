package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hrm/internal/employee/errors"
	identityerrors "go-hrm/internal/identity/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, identityerrors.ErrUserNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if errors.Is(err, identityerrors.ErrUserAlreadyExists) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_hr_employees_employee" {
		return employeeerrors.ErrEmployeeRowAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_hr_employees_employee") {
		return employeeerrors.ErrEmployeeRowAlreadyExists
	}

	return err
}
