package user

import "fmt"

// Role is a closed enumeration. Route declarations take Role values, not raw
// strings, so a typo fails at compile time instead of silently never matching.
type Role string

const (
	RoleLearner Role = "learner"
	RoleAdmin   Role = "admin"
	// An instructor tier is planned for a later phase.
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleLearner:
		return RoleLearner, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}

	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))

	return err == nil
}

// CanManageCatalog reports whether the role may create, update or delete
// courses and lessons. Reads are open to every authenticated role.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
