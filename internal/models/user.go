package models

// User is the single profile owner together with its credentials.
type User struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	PasswordHash      string `json:"-"`
	Name              string `json:"name"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}
