package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrReferenceInvalid is returned when a resource references another
	// resource that does not exist.
	ErrReferenceInvalid = errors.New("invalid reference")
)

// Month errors
var (
	ErrMonthNumberInvalid = errors.New("month must be between 1 and 12")
	ErrMonthExists        = errors.New("this month already exists")
	ErrMonthClosed        = errors.New("is closed")
	ErrMonthAlreadyClosed = errors.New("is already closed")
	ErrMonthNotClosed     = errors.New("is not closed")
)

// Classification errors
var (
	ErrCategoryNameTaken   = errors.New("this category name is already in use")
	ErrPeriodNameTaken     = errors.New("this period name is already in use")
	ErrIncomeTypeNameTaken = errors.New("this income type name is already in use")
	ErrCategoryInUse       = errors.New("cannot delete category: it is used")
	ErrPeriodInUse         = errors.New("cannot delete period: it is used")
	ErrIncomeTypeInUse     = errors.New("cannot delete income type: it is used")
)

// User errors
var (
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
	ErrResetTokenExpired  = errors.New("reset token has expired")
	ErrResetTokenUsed     = errors.New("reset token has already been used")
)
