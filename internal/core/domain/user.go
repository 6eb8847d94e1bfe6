package domain

import "errors"

// A single generic failure for both unknown email and wrong password, so the
// login endpoint cannot be used to enumerate accounts.
var ErrAuthFailed = errors.New("login failed")

var ErrEmailTaken = errors.New("email already registered")
var ErrUsernameTaken = errors.New("username already taken")
var ErrInvalidUsername = errors.New("username invalid: at most 12 characters, no whitespace")
var ErrWeakPassword = errors.New("password too weak: at least 12 characters with an upper case letter, a lower case letter and a digit")

// User is a registered account as stored in the credentials document.
// The field name "password" matches the historical document format; API
// responses are built from handler schemas and never include the hash.
type User struct {
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"password" bson:"password"`
	AvatarURL    string `json:"avatarUrl" bson:"avatar_url"`
}
