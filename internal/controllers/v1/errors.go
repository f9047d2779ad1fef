package v1

import (
	"errors"
	"net/http"

	"github.com/appz-budget/backend/internal/models"
)

// httpError is the error response body. Clients read the message from the
// "detail" key.
type httpError struct {
	Error string `json:"detail" example:"there is no expense matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	for _, conflict := range []error{
		models.ErrMonthExists,
		models.ErrCategoryNameTaken,
		models.ErrPeriodNameTaken,
		models.ErrIncomeTypeNameTaken,
		models.ErrEmailTaken,
		models.ErrCategoryInUse,
		models.ErrPeriodInUse,
		models.ErrIncomeTypeInUse,
	} {
		if errors.Is(err, conflict) {
			return http.StatusConflict
		}
	}

	if errors.Is(err, models.ErrInvalidCredentials) || errors.Is(err, models.ErrAccountInactive) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// Reorder errors
var errReorderIDsEmpty = errors.New("expense_ids must contain at least one id")

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports .xlsx files")
)

// Backup errors
var (
	errBackupFilenameInvalid = errors.New("the backup filename is invalid")
	errBackupSignatureBad    = errors.New("the download link is invalid or has expired")
)
