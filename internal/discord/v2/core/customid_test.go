package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomID_Encode(t *testing.T) {
	tests := []struct {
		name     string
		customID *CustomID
		want     string
		wantErr  bool
	}{
		{
			name:     "domain and action",
			customID: NewCustomID("verify", "start"),
			want:     "verify:start",
		},
		{
			name:     "with target",
			customID: NewCustomID("verify", "name").WithTarget("session-1"),
			want:     "verify:name:session-1",
		},
		{
			name:     "with target and args",
			customID: NewCustomID("verify", "class").WithTarget("mage").WithArgs("session-1"),
			want:     "verify:class:mage:session-1",
		},
		{
			name:     "separator inside a part",
			customID: NewCustomID("verify", "class").WithTarget("ma:ge"),
			wantErr:  true,
		},
		{
			name:     "args without target",
			customID: NewCustomID("verify", "class").WithArgs("session-1"),
			wantErr:  true,
		},
		{
			name:     "too long",
			customID: NewCustomID("verify", "class").WithTarget(strings.Repeat("x", 100)),
			wantErr:  true,
		},
		{
			name:     "missing action",
			customID: NewCustomID("verify", ""),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.customID.Encode()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCustomID(t *testing.T) {
	parsed, err := ParseCustomID("verify:role:heal:4f1c")
	require.NoError(t, err)

	assert.Equal(t, "verify", parsed.Domain)
	assert.Equal(t, "role", parsed.Action)
	assert.Equal(t, "heal", parsed.Target)
	assert.Equal(t, "4f1c", parsed.Arg(0))
	assert.Equal(t, "", parsed.Arg(1))

	for _, bad := range []string{"", "verify", ":start", "verify:"} {
		_, err := ParseCustomID(bad)
		assert.Error(t, err, bad)
	}
}

func TestCustomIDBuilder(t *testing.T) {
	builder := NewCustomIDBuilder("verify")

	assert.Equal(t, "verify:class:death knight:s1", builder.Button("class", "death knight", "s1"))
	assert.Equal(t, "verify:name:s1", builder.Modal("name", "s1"))
	assert.Panics(t, func() { builder.Button("class", "a:b") })
}

func TestCustomIDMatcher(t *testing.T) {
	matcher := NewCustomIDMatcher("verify", "class")
	assert.True(t, matcher.Matches("verify:class:mage:s1"))
	assert.False(t, matcher.Matches("verify:role:heal:s1"))
	assert.False(t, matcher.Matches("other:class:mage"))

	parsed, ok := NewCustomIDMatcher("verify", "*").Extract("verify:role:heal:s1")
	require.True(t, ok)
	assert.Equal(t, "heal", parsed.Target)
}
