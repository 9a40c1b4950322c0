package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jellyfin-tools/jellyctl/jellyfin"
)

func testUser(name string, admin, disabled bool) jellyfin.User {
	return jellyfin.User{
		Name: name,
		ID:   "id-" + name,
		Policy: jellyfin.UserPolicy{
			IsAdministrator: admin,
			IsDisabled:      disabled,
		},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    error
	}{
		{
			name:       "valid expression",
			expression: `User.Policy.IsAdministrator`,
		},
		{
			name:       "valid with helpers",
			expression: `contains(User.Name, "test") and not User.Policy.IsDisabled`,
		},
		{
			name:       "empty expression",
			expression: "   ",
			wantErr:    ErrEmptyExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.String())
		})
	}

	t.Run("syntax error", func(t *testing.T) {
		_, err := Compile(`User.Name ==`)
		assert.Error(t, err)
	})
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		user       jellyfin.User
		want       bool
	}{
		{
			name:       "admin matches",
			expression: `User.Policy.IsAdministrator`,
			user:       testUser("root", true, false),
			want:       true,
		},
		{
			name:       "non-admin does not match",
			expression: `User.Policy.IsAdministrator`,
			user:       testUser("alice", false, false),
			want:       false,
		},
		{
			name:       "contains is case insensitive",
			expression: `contains(User.Name, "TEST")`,
			user:       testUser("test-account", false, false),
			want:       true,
		},
		{
			name:       "startsWith and endsWith",
			expression: `startsWith(User.Name, "tmp-") or endsWith(User.Name, "-old")`,
			user:       testUser("account-old", false, false),
			want:       true,
		},
		{
			name:       "combined policy expression",
			expression: `User.Policy.IsDisabled and not User.Policy.IsAdministrator`,
			user:       testUser("gone", false, true),
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(tt.user)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchDateHelpers(t *testing.T) {
	old := time.Now().AddDate(0, 0, -120).Format(time.RFC3339)
	user := testUser("stale", false, false)
	user.LastActivityDate = &old

	f, err := Compile(`lastActivityDaysAgo(User) > 90`)
	require.NoError(t, err)

	got, err := f.Match(user)
	require.NoError(t, err)
	assert.True(t, got)

	t.Run("missing date counts as never active", func(t *testing.T) {
		got, err := f.Match(testUser("fresh", false, false))
		require.NoError(t, err)
		assert.False(t, got, "-1 is not greater than 90")
	})
}

func TestMatchNotBoolean(t *testing.T) {
	f, err := Compile(`User.Name`)
	require.NoError(t, err)

	_, err = f.Match(testUser("alice", false, false))
	assert.ErrorIs(t, err, ErrNotBoolean)
}

func TestSelect(t *testing.T) {
	users := []jellyfin.User{
		testUser("admin", true, false),
		testUser("alice", false, false),
		testUser("bob", false, true),
	}

	matched, err := Select(`not User.Policy.IsAdministrator`, users)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "alice", matched[0].Name)
	assert.Equal(t, "bob", matched[1].Name)
}

func TestCached(t *testing.T) {
	f1, err := Cached(`User.Policy.IsHidden`)
	require.NoError(t, err)

	f2, err := Cached(`User.Policy.IsHidden`)
	require.NoError(t, err)
	assert.Same(t, f1, f2, "same expression should reuse the compiled filter")

	_, err = Cached(``)
	assert.ErrorIs(t, err, ErrEmptyExpression)
}
