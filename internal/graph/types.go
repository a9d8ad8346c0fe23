package graph

import "time"

// User represents a user node in the graph
type User struct {
	Name      string    `json:"name"`
	Age       int       `json:"age,omitempty"`
	Location  string    `json:"location,omitempty"`
	Interests []string  `json:"interests,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// UserProfile carries the attributes supplied at registration.
// Name is required; the rest are optional.
type UserProfile struct {
	Name      string
	Age       *int
	Location  *string
	Interests []string
}

// UserUpdate carries the fields of a partial profile update.
// Nil (or nil-slice) fields are left untouched.
type UserUpdate struct {
	Age       *int
	Location  *string
	Interests []string
}

// Empty reports whether the update would change nothing
func (u UserUpdate) Empty() bool {
	return u.Age == nil && u.Location == nil && u.Interests == nil
}

// SearchCriteria holds the optional predicates of a user search.
// Supplied predicates are combined with AND.
type SearchCriteria struct {
	Name      string   // substring match against User.name
	Location  string   // exact match against User.location
	Interests []string // any-of intersection with User.interests
}

// Empty reports whether no predicate was supplied
func (c SearchCriteria) Empty() bool {
	return c.Name == "" && c.Location == "" && len(c.Interests) == 0
}

// Post represents a post node in the graph
type Post struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Group represents a group node in the graph
type Group struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FriendRequest represents a pending OUTGOING_REQUEST edge
type FriendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}
