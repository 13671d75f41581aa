package models

// Profile is the public-facing aggregate of a user and their links.
type Profile struct {
	Name              string `json:"name"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	Email             string `json:"email"`
	Links             []Link `json:"links"`
}

// NewProfile assembles a Profile; links is never encoded as null.
func NewProfile(user User, links []Link) Profile {
	if links == nil {
		links = []Link{}
	}
	return Profile{
		Name:              user.Name,
		Bio:               user.Bio,
		ProfilePictureURL: user.ProfilePictureURL,
		Email:             user.Email,
		Links:             links,
	}
}
