package model

// Role is the account type a user signs in as.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleTeacher       Role = "teacher"
	RoleStudent       Role = "student"
	RoleParent        Role = "parent"
	RoleStudentParent Role = "student_parent"
)

// AllRoles lists every role the console knows about.
var AllRoles = []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleStudentParent}

// ParseRole returns the role named by s.
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, x := range roles {
		if r == x {
			return true
		}
	}
	return false
}
