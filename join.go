package postboard

// CountPosts returns how many posts reference userID. It scans every post.
func CountPosts(posts []Post, userID int) int {
	n := 0

	for i := range posts {
		if posts[i].UserID == userID {
			n++
		}
	}

	return n
}

// Tally maps a user id to the number of posts referencing it
type Tally map[int]int

// NewTally groups posts by author in one pass
func NewTally(posts []Post) Tally {
	t := make(Tally)

	for i := range posts {
		t[posts[i].UserID]++
	}

	return t
}

func (t Tally) Count(userID int) int {
	return t[userID]
}

// Cards returns one card per user, in the order the users were fetched.
// Counts come from a single Tally over all posts.
func (ds *Dataset) Cards() []Card {
	tally := NewTally(ds.Posts)
	cards := make([]Card, len(ds.Users))

	for i, u := range ds.Users {
		cards[i] = Card{
			UserID:    u.ID,
			Name:      u.Name,
			PostCount: tally.Count(u.ID),
		}
	}

	return cards
}
