package directory

import (
	"fmt"
	"strings"
)

// Record is the normalized directory entry for an authenticated operator.
type Record struct {
	Identity string
	Login    string
	Name     string
	Email    string
	IsAdmin  bool
	Roles    []string
}

// Directory attributes requested for the person entry.
var personAttributes = []string{"uuid", "email", "cn", "sn", "givenName", "memberof", "isAdmin"}

// recordFromAttributes normalizes a raw attribute map into a Record.
// It fails closed when the unique identifier is missing: a bind without a
// resolvable identity cannot yield a principal.
func recordFromAttributes(login string, attrs map[string][]string) (*Record, error) {
	identity := firstAttr(attrs, "uuid")
	if identity == "" {
		return nil, NewError(KindIdentityNotFound, fmt.Errorf("entry for %q has no uuid attribute", login))
	}

	givenName := firstAttr(attrs, "givenName")
	surname := firstAttr(attrs, "sn")
	name := strings.TrimSpace(givenName + " " + surname)
	if name == "" {
		name = firstAttr(attrs, "cn")
	}
	if name == "" {
		name = login
	}

	email := firstAttr(attrs, "email")
	if email == "" {
		email = fmt.Sprintf("%s@example.com", login)
	}

	roles := rolesFromGroups(attrs["memberof"])
	isAdmin := strings.EqualFold(firstAttr(attrs, "isAdmin"), "true")
	if isAdmin && !containsRole(roles, "admin") {
		roles = append(roles, "admin")
	}

	return &Record{
		Identity: identity,
		Login:    login,
		Name:     name,
		Email:    email,
		IsAdmin:  isAdmin,
		Roles:    roles,
	}, nil
}

// rolesFromGroups extracts the first cn= component of each group DN.
// Typical value: cn=operators,ou=groups,o=smartdc.
func rolesFromGroups(groups []string) []string {
	roles := make([]string, 0, len(groups))
	for _, groupDN := range groups {
		idx := strings.Index(groupDN, "cn=")
		if idx < 0 {
			continue
		}
		role := groupDN[idx+len("cn="):]
		if comma := strings.Index(role, ","); comma >= 0 {
			role = role[:comma]
		}
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func firstAttr(attrs map[string][]string, name string) string {
	if values := attrs[name]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}
