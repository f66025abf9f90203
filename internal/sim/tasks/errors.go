package tasks

import "fmt"

type Code string

const (
	// CodeDesync means the world no longer matches what the task expected.
	CodeDesync Code = "E_DESYNC"
	// CodeNoItem means no inventory item passes the task's filter.
	CodeNoItem Code = "E_NO_ITEM"
)

// Error is a terminal failure of a single task.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Desync(msg string) *Error {
	return &Error{Code: CodeDesync, Message: msg}
}

// Operations is the executor surface a running task reports through.
type Operations interface {
	Desync(err *Error)
}
