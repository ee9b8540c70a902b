package parking

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the transport layer.
const (
	CodeInvalidInterval    = "invalidInterval"    // exit before entry
	CodeInvalidInput       = "invalidInput"       // malformed request data
	CodeSessionNotFound    = "sessionNotFound"    // no active session for the plate
	CodeReceiptNotFound    = "receiptNotFound"    // unknown receipt id
	CodeVehicleInside      = "vehicleInside"      // plate already has an active session
	CodeSlotUnavailable    = "slotUnavailable"    // slot occupied or unknown
	CodeBusy               = "busy"               // plate lock wait exceeded; caller should retry
	CodePersistenceFailure = "persistenceFailure" // store write failed; state rolled back
)

// Error is the typed error returned by the parking service.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err is a parking Error carrying the given code.
func IsCode(err error, code string) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == code
}
