package services

import (
	"errors"
	"time"

	"voicechat-backend/config"
	"voicechat-backend/utils"
)

// SessionService issues guest tokens that carry a display name. There are no
// credentials: any name is accepted and duplicates are allowed. The token
// only lets the web client skip the set_username round trip on reconnect.
type SessionService struct {
	config *config.Config
}

func NewSessionService(cfg *config.Config) *SessionService {
	return &SessionService{config: cfg}
}

func (s *SessionService) IssueToken(username string) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}
	if len(username) > 64 {
		return "", errors.New("username too long (maximum 64 characters)")
	}
	expiry := time.Duration(s.config.JWTExpiry) * time.Hour
	return utils.GenerateJWT(s.config.JWTSecret, username, expiry)
}

func (s *SessionService) ParseToken(token string) (string, error) {
	return utils.ParseJWT(s.config.JWTSecret, token)
}
