package constants

const (
	ROLE_ADMIN  = "ADMIN"
	ROLE_COUPLE = "COUPLE"
)

const (
	RSVP_PENDING   = "pending"
	RSVP_CONFIRMED = "confirmed"
	RSVP_DECLINED  = "declined"
)

const (
	AGE_ADULT = "adult"
	AGE_CHILD = "child"
)

// Unmapped template edit handling, TEMPLATE_UNMAPPED_MODE.
const (
	UNMAPPED_ACCEPT = "accept"
	UNMAPPED_REJECT = "reject"
)

const (
	ERROR_INPUT            = "Invalid input"
	ERROR_INTERNAL_ERROR   = "Internal server error"
	MISSING_LOGIN_INPUT    = "Email and password are required"
	INVALID_EMAIL          = "Email does not exist"
	INVALID_PASSWORD       = "Wrong password"
	ACCOUNT_NOT_ACTIVE     = "Account is not verified yet"
	EMAIL_ALREADY_USED     = "Email is already registered"
	COUPLE_NOT_FOUND       = "Wedding site not found"
	GUEST_NOT_FOUND        = "Guest not found"
	GROUP_NOT_FOUND        = "Guest group not found"
	THEME_NOT_FOUND        = "Unknown theme"
	FIELD_NOT_MAPPED       = "Template field is not persisted"
	SLUG_EXHAUSTED         = "Could not allocate a free site address"
	INVALID_VERIFY_TOKEN   = "Verification link is invalid or expired"
	INVALID_RESET_TOKEN    = "Password reset link is invalid or expired"
	RSVP_CODE_INVALID      = "Invitation code is invalid"
	RSVP_DEADLINE_PASSED   = "The RSVP deadline has passed"
	CAN_NOT_EDIT_COUPLE    = "No permission to edit this wedding site"
	CONTRIBUTION_NEGATIVE  = "Contribution amount must be positive"
	VERIFY_EMAIL_SUBJECT   = "Confirm your wedding site account"
	RESET_PASSWORD_SUBJECT = "Reset your dashboard password"
	RSVP_NOTIFY_SUBJECT    = "A guest answered your invitation"
	RSVP_REMINDER_SUBJECT  = "Your wedding is coming up"
)
