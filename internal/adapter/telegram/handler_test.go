package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAdminIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[int64]struct{}
	}{
		{
			name: "empty string yields empty set",
			raw:  "",
			want: map[int64]struct{}{},
		},
		{
			name: "comma separated with spaces",
			raw:  "123, -100456,789",
			want: map[int64]struct{}{123: {}, -100456: {}, 789: {}},
		},
		{
			name: "garbage entries are skipped",
			raw:  "123,abc,,456",
			want: map[int64]struct{}{123: {}, 456: {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAdminIDs(tt.raw))
		})
	}
}

func TestAuthorizedChat_UnlistedChatIsRejected(t *testing.T) {
	h := &Handler{adminIDs: ParseAdminIDs("123,-100456")}

	assert.True(t, h.authorizedChat(123))
	assert.True(t, h.authorizedChat(-100456))
	assert.False(t, h.authorizedChat(789))
}

func TestAuthorizedChat_EmptyAllowlistLeavesCommandOpen(t *testing.T) {
	h := &Handler{adminIDs: ParseAdminIDs("")}

	assert.True(t, h.authorizedChat(789))
}
