package postboard

// User as served by the users endpoint. Fields other than id and name are
// ignored when decoding.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Post is reduced to the reference to its author
type Post struct {
	UserID int `json:"userId"`
}

// Dataset is the result of one fetch. It is never mutated after Fetch returns.
type Dataset struct {
	Users []User `json:"users"`
	Posts []Post `json:"posts"`
}

// Card is what the renderer draws for a single user
type Card struct {
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	PostCount int    `json:"postCount"`
}
