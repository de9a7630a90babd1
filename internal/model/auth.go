package model

// AccessToken is the object carried by access tokens.
type AccessToken struct {
	ID string `json:"id"`
}
