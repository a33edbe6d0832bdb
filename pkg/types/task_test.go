package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserKeyAndRole(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		wantKey  string
		wantRole string
	}{
		{
			name:     "mixed case username is lowercased",
			user:     User{Username: "Nadia", Password: "pw"},
			wantKey:  "nadia",
			wantRole: RoleUser,
		},
		{
			name:     "admin account gets admin role",
			user:     User{Username: "Admin", Password: "pw"},
			wantKey:  "admin",
			wantRole: RoleAdmin,
		},
		{
			name:     "surrounding whitespace is trimmed",
			user:     User{Username: "  otis ", Password: "pw"},
			wantKey:  "otis",
			wantRole: RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, tt.user.Key())
			assert.Equal(t, tt.wantRole, tt.user.Role())
		})
	}
}

func TestTaskValidate(t *testing.T) {
	valid := Task{
		Username:     "nadia",
		Title:        "File report",
		Description:  "Quarterly numbers",
		DueDate:      "12 October 2026",
		AssignedDate: "01 September 2026",
	}
	assert.NoError(t, valid.Validate())

	blankTitle := valid
	blankTitle.Title = " "
	assert.ErrorIs(t, blankTitle.Validate(), ErrBlankField)

	blankDue := valid
	blankDue.DueDate = ""
	assert.ErrorIs(t, blankDue.Validate(), ErrBlankField)
}
