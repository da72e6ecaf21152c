package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tritonops/admin-gateway/internal/domain"
)

// DevRegistry resolves a fixed set of development accounts without touching
// the directory. It exists for environments with no reachable UFDS and is
// only constructed when explicitly enabled by configuration.
type DevRegistry struct {
	accounts map[string]devAccount
}

type devAccount struct {
	passwordHash string
	principal    domain.Principal
}

// NewDevRegistry builds the registry. Seed passwords are bcrypt-hashed at
// construction so no plaintext copy survives past startup.
func NewDevRegistry() *DevRegistry {
	seeds := []struct {
		login    string
		password string
		id       string
		name     string
		email    string
		roles    []string
	}{
		{
			login:    "admin",
			password: "admin",
			id:       "00000000-0000-0000-0000-000000000000",
			name:     "Administrator",
			email:    "admin@example.com",
			roles:    []string{"admin"},
		},
		{
			login:    "operator",
			password: "operator",
			id:       "11111111-1111-1111-1111-111111111111",
			name:     "System Operator",
			email:    "operator@example.com",
			roles:    []string{"operator"},
		},
	}

	accounts := make(map[string]devAccount, len(seeds))
	for _, seed := range seeds {
		hash, err := HashPassword(seed.password, bcrypt.MinCost)
		if err != nil {
			continue
		}
		accounts[seed.login] = devAccount{
			passwordHash: hash,
			principal: domain.Principal{
				ID:    uuid.MustParse(seed.id),
				Name:  seed.name,
				Email: seed.email,
				Roles: seed.roles,
			},
		}
	}
	return &DevRegistry{accounts: accounts}
}

// Resolve returns the fixed principal for a matching credential pair.
func (r *DevRegistry) Resolve(username, password string) (*domain.Principal, bool) {
	if r == nil {
		return nil, false
	}
	account, ok := r.accounts[username]
	if !ok {
		return nil, false
	}
	if err := ComparePassword(account.passwordHash, password); err != nil {
		return nil, false
	}
	principal := account.principal
	return &principal, true
}
