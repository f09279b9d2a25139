package services

import "net/http"

// ErrorKind identifies a failure class in the booking workflow. The set is
// closed: handlers map kinds to HTTP statuses and clients match on them.
type ErrorKind string

const (
	KindValidationError    ErrorKind = "ValidationError"
	KindInvalidDateFormat  ErrorKind = "InvalidDateFormat"
	KindVehicleNotFound    ErrorKind = "VehicleNotFound"
	KindVehicleUnavailable ErrorKind = "VehicleUnavailable"
	KindCoachNotFound      ErrorKind = "CoachNotFound"
	KindRoomNotFound       ErrorKind = "RoomNotFound"
	KindTripNotFound       ErrorKind = "TripNotFound"
	KindBookingNotFound    ErrorKind = "BookingNotFound"
	KindInsufficientSeats  ErrorKind = "InsufficientSeats"
	KindInsufficientRooms  ErrorKind = "InsufficientRooms"
	KindCapacityExceeded   ErrorKind = "CapacityExceeded"
	KindSeatNotFound       ErrorKind = "SeatNotFound"
	KindSeatAlreadyBooked  ErrorKind = "SeatAlreadyBooked"
	KindNotImplemented     ErrorKind = "NotImplemented"
	KindTransactionFailure ErrorKind = "TransactionFailure"
)

// BookingError is a workflow failure with a user-facing message and an
// optional structured detail payload (e.g. conflicting seat ids).
type BookingError struct {
	Kind    ErrorKind
	Message string
	Detail  interface{}
	Err     error
}

// Error implements the error interface
func (e *BookingError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *BookingError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to an HTTP status code
func (e *BookingError) HTTPStatus() int {
	switch e.Kind {
	case KindVehicleNotFound, KindCoachNotFound, KindRoomNotFound,
		KindTripNotFound, KindBookingNotFound:
		return http.StatusNotFound
	case KindNotImplemented:
		return http.StatusNotImplemented
	case KindTransactionFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// NewBookingError creates a BookingError with a kind and message
func NewBookingError(kind ErrorKind, message string) *BookingError {
	return &BookingError{Kind: kind, Message: message}
}

// NewTransactionFailure wraps an unexpected error raised after the write
// transaction started. The cause is kept for logging and env-gated detail;
// the user message stays generic.
func NewTransactionFailure(err error) *BookingError {
	return &BookingError{
		Kind:    KindTransactionFailure,
		Message: "Booking could not be completed",
		Err:     err,
	}
}
