package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTTL = 72 * time.Hour

// CreateSession issues an anonymous client id and a signed token for the
// websocket handshake. The backend serves a single user, so this is session
// identity, not authentication.
func (h *Handler) CreateSession(c *gin.Context) {
	clientID := uuid.NewString()

	claims := jwt.MapClaims{
		"client_id": clientID,
		"exp":       time.Now().Add(sessionTTL).Unix(),
		"iss":       "forik-backend",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "client_id": clientID})
}

// clientIDFromToken validates the bearer token and returns the client id.
func (h *Handler) clientIDFromToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	clientID, _ := claims["client_id"].(string)
	if clientID == "" {
		return "", fmt.Errorf("token carries no client id")
	}
	return clientID, nil
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	// websocket clients in browsers cannot set headers
	return c.Query("token")
}
