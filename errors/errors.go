package errors

const (
	AllFieldsRequired         = "All fields are required"
	PasswordTooShortError     = "Password must be at least 6 characters"
	UserExistsError           = "User exists"
	InvalidCredentials        = "Invalid Credentials"
	InvalidRequestFormatError = "Invalid request format"

	MissingBookingDetails   = "Missing Details"
	GuestCountError         = "At least 1 guest required"
	GuestListMismatchError  = "Guest details do not match guest count"
	InvalidDateRangeError   = "Check-out must be after check-in"
	UnauthorizedError       = "Unauthorized"
	CancellationExpired     = "Expired"
	BookingAlreadyCancelled = "Booking is not confirmed"

	InvalidOTPError           = "Invalid OTP"
	EmailChangeNotAuthorized  = "Unauthorized. Verify OTP first."
	EmailAlreadyTaken         = "Email already taken"
	MailDispatchError         = "Failed to send email. Check Server Config."
	InvalidAgeError           = "Invalid age (1-150)"
	NoFileError               = "No file"
	NotAnImageError           = "Only images are allowed"
	FileTooLargeError         = "File too large. Max 2MB allowed."
	UploadFailedError         = "Failed"

	ExpiredSessionError = "Session has expired"
)
