package corpus

import "encoding/json"

type tokenRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// tokenResponse carries the bearer token. ExpiresIn is optional; when absent
// the configured lifetime applies.
type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type userInfo struct {
	UserID string `json:"userId"`
}

type createUserResponse struct {
	Data userInfo `json:"data"`
}

// conflictResponse is returned with 409 when the user already exists.
type conflictResponse struct {
	User userInfo `json:"user"`
}

type sentencesResponse struct {
	Data []sentenceDTO `json:"data"`
}

type sentenceDTO struct {
	TextID string `json:"textId"`
	Text   string `json:"text"`
	Hash   string `json:"hash"`
}

type uploadResponse struct {
	ID      string              `json:"id"`
	AudioID string              `json:"audioId"`
	Status  string              `json:"status"`
	Data    *uploadResponseData `json:"data"`
}

type uploadResponseData struct {
	ID      string `json:"id"`
	AudioID string `json:"audioId"`
	Status  string `json:"status"`
}

type languageDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type languagesResponse struct {
	Data []languageDTO `json:"data"`
}

type errorResponse struct {
	Detail  string          `json:"detail"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}
