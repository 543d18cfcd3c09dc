package constants

// Organization permissions
const (
	// Admin permissions
	PermHelpdeskAdminFull = "helpdesk.admin.full-permit"
	PermReviewerFull      = "helpdesk.reviewer.full-permit"
	PermOperatorFull      = "helpdesk.operator.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	ReviewPermissions = []string{
		PermHelpdeskAdminFull,
		PermReviewerFull,
	}
)
