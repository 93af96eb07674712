package postboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountPosts(t *testing.T) {
	posts := []Post{{UserID: 1}, {UserID: 1}, {UserID: 2}}

	assert.Equal(t, 2, CountPosts(posts, 1))
	assert.Equal(t, 1, CountPosts(posts, 2))
	assert.Equal(t, 0, CountPosts(posts, 3))
	assert.Equal(t, 0, CountPosts(nil, 1))
}

func TestTallyMatchesLinearScan(t *testing.T) {
	posts := []Post{{UserID: 3}, {UserID: 1}, {UserID: 3}, {UserID: 7}, {UserID: 3}, {UserID: 0}}
	tally := NewTally(posts)

	for _, id := range []int{0, 1, 2, 3, 7, 99} {
		assert.Equal(t, CountPosts(posts, id), tally.Count(id), "user %d", id)
	}
}

func TestDatasetCards(t *testing.T) {
	t.Run("single-user", func(t *testing.T) {
		ds := &Dataset{
			Users: []User{{ID: 1, Name: "Ann"}},
			Posts: []Post{{UserID: 1}, {UserID: 1}, {UserID: 2}},
		}

		assert.Equal(t, []Card{{UserID: 1, Name: "Ann", PostCount: 2}}, ds.Cards())
	})

	t.Run("keeps-user-order", func(t *testing.T) {
		ds := &Dataset{
			Users: []User{{ID: 9, Name: "Zed"}, {ID: 2, Name: "Bo"}, {ID: 5, Name: "Cy"}},
			Posts: []Post{{UserID: 5}, {UserID: 9}},
		}

		cards := ds.Cards()
		if assert.Len(t, cards, 3) {
			assert.Equal(t, "Zed", cards[0].Name)
			assert.Equal(t, 1, cards[0].PostCount)
			assert.Equal(t, "Bo", cards[1].Name)
			assert.Equal(t, 0, cards[1].PostCount)
			assert.Equal(t, "Cy", cards[2].Name)
			assert.Equal(t, 1, cards[2].PostCount)
		}
	})

	t.Run("empty", func(t *testing.T) {
		ds := &Dataset{}
		assert.Empty(t, ds.Cards())
	})
}
