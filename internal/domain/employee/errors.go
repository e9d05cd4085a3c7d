package employee

import "errors"

var (
	ErrEmployeeNotFound           = errors.New("employee not found")
	ErrRegistrationNumberExists   = errors.New("registration number already exists")
	ErrEmployeeAlreadyLinked      = errors.New("employee already linked to a login")
	ErrTerminationBeforeAdmission = errors.New("termination date before admission date")
)
