package model

import "net/url"

// User is the signed-in identity kept in the session store.
type User struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"isAdmin"`
	ProfilePic string `json:"profilePic,omitempty"`
}

const RoleAdmin = "ADMIN"

func AvatarURL(username string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(username)
}

// SignUpReq represents user registration payload
// swagger:model SignUpReq
type SignUpReq struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignInReq represents login payload
// swagger:model SignInReq
type SignInReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Customer is a registered account as listed in the admin console.
type Customer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// Profile holds the delivery defaults remembered per user.
type Profile struct {
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}
