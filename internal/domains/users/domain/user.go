package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidEmail  = errors.New("a valid email address is required")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
)

// User represents a print-shop customer account. Orders reference users by
// ID, and the notification channel needs the email on file.
type User struct {
	ID       string
	Username string
	Name     string
	Email    string
	Password string
	Phone    string
	Admin    bool
}

// NewUser builds a user ensuring required invariants.
func NewUser(username, password, email string) (*User, error) {
	user := &User{}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetPassword validates basic password strength.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	u.Password = password
	return nil
}

// SetEmail validates the delivery address used for order notifications.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// UpdateProfile applies optional profile fields.
func (u *User) UpdateProfile(name, phone string) {
	u.Name = strings.TrimSpace(name)
	u.Phone = strings.TrimSpace(phone)
}

// DisplayName prefers the profile name and falls back to the username.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// CheckPassword compares the stored password with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return strings.TrimSpace(password) != "" && u.Password == strings.TrimSpace(password)
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if err := u.SetPassword(u.Password); err != nil {
		return err
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	u.UpdateProfile(u.Name, u.Phone)
	return nil
}
