package auth

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const deviceIdKey = "device"

// GuestSession remembers a generated device id for browsers that do not send one
type GuestSession struct {
	sessions.Session
}

func LoadGuestSession(c *gin.Context) *GuestSession {
	return &GuestSession{
		Session: sessions.Default(c),
	}
}

// DeviceID returns the id stored in the cookie, creating one on first use
func (s *GuestSession) DeviceID() string {
	if id, ok := s.Get(deviceIdKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.Set(deviceIdKey, id)
	if err := s.Save(); err != nil {
		log.Printf("Session: cannot save device id: %v", err)
	}
	return id
}
