package order

import "errors"

type ErrCode string

const (
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrBackend      ErrCode = "BACKEND"
	ErrUpdateFailed ErrCode = "UPDATE_FAILED"
)

const (
	MsgNoOrderID    = "Please enter an order ID."
	MsgNotFound     = "No order found with this ID. Please check and try again."
	MsgTrackFailed  = "Failed to track order. Please try again."
	MsgLoadFailed   = "Failed to load orders. Please try again."
	MsgUpdateFailed = "Failed to update order status"
	MsgBadStatus    = "Unknown order status."
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

func Message(err error) string {
	var ce interface{ Message() string }
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return "Something went wrong. Please try again."
}
