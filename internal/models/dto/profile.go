package dto

// EditProfileRequest uses pointers so that an absent name or bio can be told
// apart from an empty string.
type EditProfileRequest struct {
	Name  *string       `json:"name"`
	Bio   *string       `json:"bio"`
	Links []LinkPayload `json:"links"`
}

type LinkPayload struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type EditProfileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
