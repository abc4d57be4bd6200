package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	cases := []struct {
		role  string
		read  bool
		write bool
	}{
		{"employee", true, false},
		{"teacher", true, true},
		{"administrator", true, true},
		{"", false, false},
		{"Administrator", false, false},
		{"guest", false, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.read, Can(tc.role, Read), "read для %q", tc.role)
		assert.Equal(t, tc.write, Can(tc.role, Write), "write для %q", tc.role)
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		parsed, ok := ParseRole(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, parsed)
	}

	_, ok := ParseRole("root")
	assert.False(t, ok)
}
