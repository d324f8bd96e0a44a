package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMention(t *testing.T) {
	t.Run("should extract the directive when the token leads", func(t *testing.T) {
		req := require.New(t)

		directive, ok := ParseMention("@ai ping")

		req.True(ok)
		req.Equal("ping", directive)
	})

	t.Run("should keep interior whitespace when the token is in the middle", func(t *testing.T) {
		req := require.New(t)

		directive, ok := ParseMention("hello @ai what is 2+2")

		req.True(ok)
		req.Equal("hello  what is 2+2", directive)
	})

	t.Run("should remove only the first occurrence of the token", func(t *testing.T) {
		req := require.New(t)

		directive, ok := ParseMention("@ai tell @ai a joke")

		req.True(ok)
		req.Equal("tell @ai a joke", directive)
	})

	t.Run("should return an empty directive when the message is only the token", func(t *testing.T) {
		req := require.New(t)

		directive, ok := ParseMention("@ai")

		req.True(ok)
		req.Empty(directive)
	})

	t.Run("should not match when the token is absent", func(t *testing.T) {
		req := require.New(t)

		_, ok := ParseMention("hello room")

		req.False(ok)
	})

	t.Run("should be case sensitive", func(t *testing.T) {
		req := require.New(t)

		_, ok := ParseMention("hey @AI are you there")

		req.False(ok)
	})
}

func TestProject_IsMember(t *testing.T) {
	req := require.New(t)

	project := Project{
		ID:        "p1",
		CreatorID: "creator",
		MemberIDs: []string{"member-a"},
	}

	// The creator is always a member even when absent from the list
	req.True(project.IsMember("creator"))
	req.True(project.IsMember("member-a"))
	req.False(project.IsMember("stranger"))
}
