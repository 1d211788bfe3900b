package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrEmployeeLinkNotAllowed = errors.New("admin accounts cannot be linked to an employee record")
)
