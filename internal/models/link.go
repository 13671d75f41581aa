package models

// Link is one entry of a user's link list. Links have no identity of their
// own; their order is the order in which they were last written.
type Link struct {
	UserID int64  `json:"-"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}
