package booking

import "errors"

type ErrCode string

const (
	ErrValidation         ErrCode = "VALIDATION"
	ErrNoVehicle          ErrCode = "NO_VEHICLE_SELECTED"
	ErrNoDelivery         ErrCode = "NO_DELIVERY_DETAILS"
	ErrVehicleNotFound    ErrCode = "VEHICLE_NOT_FOUND"
	ErrVehicleUnavailable ErrCode = "VEHICLE_UNAVAILABLE"
	ErrBackend            ErrCode = "BACKEND"
)

const (
	MsgFillAll      = "Please fill in all fields."
	MsgMobile       = "Please enter a valid 10-digit mobile number."
	MsgPincode      = "Please enter a valid 6-digit pincode."
	MsgDatesMissing = "Please select start and end dates for the booking."
	MsgDateOrder    = "Please ensure start date is before or equal to end date."
	MsgStartPast    = "Start date cannot be in the past."
	MsgTerms        = "You must accept the terms and conditions to proceed to payment."
	MsgCardDetails  = "Please fill in all card details."
	MsgUPIDetails   = "Please enter UPI ID or scan QR code."
	MsgUnavailable  = "This vehicle is currently not available for booking."
	MsgPayFailed    = "Failed to process payment. Please try again."
	MsgNoVehicles   = "Failed to load vehicles. Please try again."
)

type codedError struct {
	code  ErrCode
	field string
	msg   string
}

func (e codedError) Error() string   { return string(e.code) + ": " + e.msg }
func (e codedError) Code() ErrCode   { return e.code }
func (e codedError) Message() string { return e.msg }
func (e codedError) Field() string   { return e.field }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func fieldErr(field, msg string) error {
	return codedError{code: ErrValidation, field: field, msg: msg}
}

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

// Field names the offending form field of a validation error.
func Field(err error) string {
	var ce interface{ Field() string }
	if errors.As(err, &ce) {
		return ce.Field()
	}
	return ""
}
