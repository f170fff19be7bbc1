package constants

const (
	ROLE_USER  = "USER"
	ROLE_STAFF = "STAFF"
)

const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read validated input"
	DATA_INPUT_IS_NOT_NUMBER   = "Id must be a number"

	MISSING_LOGIN_INPUT = "Email and password are required"
	INVALID_CREDENTIALS = "Invalid email or password"
	EMAIL_ALREADY_USED  = "Email is already registered"

	PERMISSION_DENIED   = "You do not have permission to perform this action"
	AUTH_REQUIRED       = "Authentication required"
	METHOD_NOT_ALLOWED  = "Method not allowed"
	RESERVATION_LOCKED  = "Reservations cannot be updated, delete and create a new one"
	SEAT_ALREADY_TAKEN  = "Seat is already taken for this performance"
	DUPLICATE_SEAT_SENT = "The same seat appears more than once in the request"
)
