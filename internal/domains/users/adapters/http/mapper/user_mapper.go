package mapper

import userdomain "github.com/AshokAssist/OnlineBanner/internal/domains/users/domain"

// UserPayload represents the transport-level user payload.
type UserPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// UserResponse is the outward projection. Credentials never leave the service.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Admin    bool   `json:"admin"`
}

// ToDomainUser converts a transport user to its domain counterpart.
func ToDomainUser(payload UserPayload) (*userdomain.User, error) {
	user, err := userdomain.NewUser(payload.Username, payload.Password, payload.Email)
	if err != nil {
		return nil, err
	}
	user.UpdateProfile(payload.Name, payload.Phone)
	return user, nil
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		Admin:    user.Admin,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
