package models

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// TokenPair is the access/refresh pair issued on login and on every refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (tp TokenPair) Valid() bool {
	return tp.AccessToken != "" && tp.RefreshToken != ""
}

type TokenRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// MessageResponse is the body shape the API uses for acknowledgements and
// errors. Validation failures carry a list of messages instead of a string.
type MessageResponse struct {
	Message    string `json:"-"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (m *MessageResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message    jsoniter.RawMessage `json:"message"`
		StatusCode int                 `json:"statusCode"`
		Error      string              `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.StatusCode = raw.StatusCode
	m.Error = raw.Error
	m.Message = ""

	if len(raw.Message) == 0 {
		return nil
	}

	var single string
	if err := json.Unmarshal(raw.Message, &single); err == nil {
		m.Message = single
		return nil
	}

	var multiple []string
	if err := json.Unmarshal(raw.Message, &multiple); err == nil && len(multiple) > 0 {
		m.Message = multiple[0]
		for _, msg := range multiple[1:] {
			m.Message += "; " + msg
		}
	}
	return nil
}
