// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAccessDenied       = "auth.access_denied"
	KeyAuthUserInactive       = "auth.user_inactive"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Consents
	KeyConsentCreated        = "consent.created"
	KeyConsentApproved       = "consent.approved"
	KeyConsentRejected       = "consent.rejected"
	KeyConsentRevoked        = "consent.revoked"
	KeyConsentNotFound       = "consent.not_found"
	KeyConsentNotPending     = "consent.not_pending"
	KeyConsentNotApproved    = "consent.not_approved"
	KeyConsentAlreadyRevoked = "consent.already_revoked"

	// Users
	KeyUserCreated     = "user.created"
	KeyUserUpdated     = "user.updated"
	KeyUserDeleted     = "user.deleted"
	KeyUserNotFound    = "user.not_found"
	KeyUserEmailExists = "user.email_exists"
	KeyUserLastAdmin   = "user.last_admin"

	// Applicants
	KeyApplicantCreated     = "applicant.created"
	KeyApplicantUpdated     = "applicant.updated"
	KeyApplicantDeactivated = "applicant.deactivated"
	KeyApplicantNotFound    = "applicant.not_found"

	// Export
	KeyExportCompleted = "export.completed"
	KeyImportCompleted = "import.completed"
)
