package session

import "errors"

type ErrCode string

const (
	ErrBadInput      ErrCode = "BAD_INPUT"
	ErrInvalidCreds  ErrCode = "INVALID_CREDENTIALS"
	ErrUsernameTaken ErrCode = "USERNAME_TAKEN"
	ErrRejected      ErrCode = "BACKEND_REJECTED"
	ErrUnavailable   ErrCode = "BACKEND_UNAVAILABLE"
	ErrNoSession     ErrCode = "NO_SESSION"
)

const (
	MsgInvalidCreds  = "Invalid username or password."
	MsgUsernameTaken = "Username already exists. Please choose another one."
	MsgFillAll       = "Please fill in all fields."
	MsgShortPassword = "Password must be at least 6 characters long."
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string   { return string(e.code) + ": " + e.msg }
func (e codedError) Code() ErrCode   { return e.code }
func (e codedError) Message() string { return e.msg }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Message is the user-facing text for err.
func Message(err error) string {
	var ce interface{ Message() string }
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return "Something went wrong. Please try again."
}
