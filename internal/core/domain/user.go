package domain

import "time"

// User is the account profile returned by the backend.
type User struct {
	ID           string              `json:"_id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	MobileNo     string              `json:"mobileNo"`
	IsProfession bool                `json:"isProfession"`
	Profession   *ProfessionalRecord `json:"profession,omitempty"`
}

// BasicProfileUpdate carries the user fields that may be changed
// independently of the profession. Empty fields are left unchanged.
type BasicProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	MobileNo string `json:"mobileNo,omitempty"`
}

// Registration is the sign-up request that triggers the OTP flow.
type Registration struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	MobileNo   string `json:"mobileNo"`
	Pin        string `json:"pin"`
	ConfirmPin string `json:"confirmPin"`
}

// OTPVerification completes a registration.
type OTPVerification struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobileNo"`
	Pin      string `json:"pin"`
	OTP      string `json:"otp"`
}

// LoginResult is the backend answer to a successful login or OTP verification.
type LoginResult struct {
	Token        string `json:"token"`
	UserID       string `json:"userId"`
	IsProfession bool   `json:"isProfession"`
}

// Session is the cached authentication state shared by all screens.
type Session struct {
	Token          string
	UserID         string
	IsProfession   bool
	LastActiveTime time.Time
}

// IsZero reports whether no session is cached.
func (s Session) IsZero() bool {
	return s.Token == ""
}

// Session store keys. They are always written and cleared together.
const (
	SessionKeyToken          = "userToken"
	SessionKeyUserID         = "userID"
	SessionKeyIsProfession   = "isProfession"
	SessionKeyLastActiveTime = "lastActiveTime"
)

// SessionKeys lists every session key.
func SessionKeys() []string {
	return []string{SessionKeyToken, SessionKeyUserID, SessionKeyIsProfession, SessionKeyLastActiveTime}
}
