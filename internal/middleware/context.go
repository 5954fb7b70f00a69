package middleware

import (
	"errors"

	"github.com/chaiteam/chaiteam-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GetIdentity extracts the authenticated requester from the JWT claims
// placed in context by JWTProtected.
func GetIdentity(c *fiber.Ctx) (services.Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return services.Identity{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return services.Identity{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return services.Identity{}, errors.New("missing sub claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return services.Identity{}, err
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return services.Identity{ID: id, Name: name, Email: email, Role: role}, nil
}
