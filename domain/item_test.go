package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharedItem_Recipients(t *testing.T) {
	t.Run("owner excluded", func(t *testing.T) {
		item := SharedItem{
			CreatedBy:  UserRef{Id: "owner"},
			SharedWith: []string{"a", "owner", "b"},
		}
		assert.Equal(t, []string{"a", "b"}, item.Recipients())
	})
	t.Run("owner first", func(t *testing.T) {
		item := SharedItem{
			CreatedBy:  UserRef{Id: "owner"},
			SharedWith: []string{"owner", "b", "a"},
		}
		assert.Equal(t, []string{"b", "a"}, item.Recipients())
	})
	t.Run("duplicates", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, ExcludeUser([]string{"a", "a", ""}, "owner"))
	})
	t.Run("only owner", func(t *testing.T) {
		assert.Empty(t, ExcludeUser([]string{"owner"}, "owner"))
	})
}

func TestKind(t *testing.T) {
	assert.True(t, KindNote.Valid())
	assert.True(t, KindNote.Shared())
	assert.True(t, KindStock.Valid())
	assert.False(t, KindStock.Shared())
	assert.False(t, Kind("space").Valid())
}
