package session

// Role is a closed-set tag controlling which parts of the product a
// session may reach.
type Role string

const (
	RoleUser         Role = "user"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

// Session is the authentication state of the running client. It is only
// ever replaced wholesale: Login and Logout build a complete new value,
// so readers never observe a partially updated session.
type Session struct {
	AccessToken     string
	RefreshToken    string
	Role            Role
	IsAuthenticated bool
	Claims          *Claims
}
