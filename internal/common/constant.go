package common

const (
	// DefaultAdminEmail is the login identifier of the administrator seeded at
	// startup. That account can never be removed through DeleteUser.
	DefaultAdminEmail = "admin"

	// DefaultAdminName is the display name of the seeded administrator.
	DefaultAdminName = "Admin"

	// DateLayout is the textual form of calendar dates in storage.
	DateLayout = "2006-01-02"

	// RecentHistoryLimit is the number of mood records shown in a profile.
	RecentHistoryLimit = 7
)
