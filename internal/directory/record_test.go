package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFromAttributes(t *testing.T) {
	attrs := map[string][]string{
		"uuid":      {"5d41b4a2-8de7-4b35-9c43-0f3a8b1de111"},
		"email":     {"jdoe@dc1.example.com"},
		"cn":        {"jdoe"},
		"givenName": {"Jane"},
		"sn":        {"Doe"},
		"memberof":  {"cn=operators,ou=groups,o=smartdc", "cn=readers,ou=groups,o=smartdc"},
	}

	record, err := recordFromAttributes("jdoe", attrs)
	require.NoError(t, err)

	assert.Equal(t, "5d41b4a2-8de7-4b35-9c43-0f3a8b1de111", record.Identity)
	assert.Equal(t, "jdoe", record.Login)
	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "jdoe@dc1.example.com", record.Email)
	assert.False(t, record.IsAdmin)
	assert.Equal(t, []string{"operators", "readers"}, record.Roles)
}

func TestRecordMissingUUIDFailsClosed(t *testing.T) {
	attrs := map[string][]string{
		"cn":    {"jdoe"},
		"email": {"jdoe@dc1.example.com"},
	}

	_, err := recordFromAttributes("jdoe", attrs)
	require.Error(t, err)
	assert.Equal(t, KindIdentityNotFound, Classify(err))
}

func TestRecordDisplayNameFallbacks(t *testing.T) {
	base := map[string][]string{"uuid": {"5d41b4a2-8de7-4b35-9c43-0f3a8b1de111"}}

	tests := []struct {
		name  string
		extra map[string][]string
		want  string
	}{
		{"given name only", map[string][]string{"givenName": {"Jane"}}, "Jane"},
		{"surname only", map[string][]string{"sn": {"Doe"}}, "Doe"},
		{"falls back to cn", map[string][]string{"cn": {"jdoe"}}, "jdoe"},
		{"falls back to login", nil, "jdoe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			attrs := map[string][]string{}
			for k, v := range base {
				attrs[k] = v
			}
			for k, v := range tc.extra {
				attrs[k] = v
			}
			record, err := recordFromAttributes("jdoe", attrs)
			require.NoError(t, err)
			assert.Equal(t, tc.want, record.Name)
		})
	}
}

func TestRecordAdminFlagAppendsRole(t *testing.T) {
	attrs := map[string][]string{
		"uuid":     {"5d41b4a2-8de7-4b35-9c43-0f3a8b1de111"},
		"cn":       {"root"},
		"memberof": {"cn=operators,ou=groups,o=smartdc"},
		"isAdmin":  {"true"},
	}

	record, err := recordFromAttributes("root", attrs)
	require.NoError(t, err)
	assert.True(t, record.IsAdmin)
	assert.Equal(t, []string{"operators", "admin"}, record.Roles)
}

func TestRecordAdminRoleNotDuplicated(t *testing.T) {
	attrs := map[string][]string{
		"uuid":     {"5d41b4a2-8de7-4b35-9c43-0f3a8b1de111"},
		"cn":       {"root"},
		"memberof": {"cn=admin,ou=groups,o=smartdc"},
		"isAdmin":  {"true"},
	}

	record, err := recordFromAttributes("root", attrs)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, record.Roles)
}

func TestRecordSkipsGroupsWithoutCN(t *testing.T) {
	attrs := map[string][]string{
		"uuid":     {"5d41b4a2-8de7-4b35-9c43-0f3a8b1de111"},
		"cn":       {"jdoe"},
		"memberof": {"ou=groups,o=smartdc", "cn=operators,ou=groups,o=smartdc"},
	}

	record, err := recordFromAttributes("jdoe", attrs)
	require.NoError(t, err)
	assert.Equal(t, []string{"operators"}, record.Roles)
}

func TestRecordDefaultEmail(t *testing.T) {
	attrs := map[string][]string{
		"uuid": {"5d41b4a2-8de7-4b35-9c43-0f3a8b1de111"},
		"cn":   {"jdoe"},
	}

	record, err := recordFromAttributes("jdoe", attrs)
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", record.Email)
}
