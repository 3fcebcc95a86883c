package constants

// Access tiers for the back office. Every superuser is also staff.
type Tier string

const (
	TierStaff     Tier = "staff"
	TierSuperuser Tier = "superuser"
)

const (
	LoginPath     = "/admin-login/"
	DashboardPath = "/admindashboard/"
)

// Guard messages
const (
	ErrAuthRequired     = "Authentication required"
	ErrPermissionDenied = "Permission denied"
	ErrNoAdminAccess    = "You do not have permission to access the admin dashboard"
)

// Locals keys written by the auth middleware.
const (
	LocUserID      = "user_id"
	LocUserName    = "user_name"
	LocIsStaff     = "is_staff"
	LocIsSuperuser = "is_superuser"
)
