package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

var jwtKey []byte

func init() {
	if err := godotenv.Load(); err != nil {
		log.Default().Println("No .env file found")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "test_secret_key_minimum_32_characters_long_for_testing_only"
	}

	jwtKey = []byte(secret)
}

func ValidateJWTSecret() error {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if len(secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long (current: %d)", len(secret))
	}

	if secret == "test_secret_key_minimum_32_characters_long_for_testing_only" {
		return fmt.Errorf("cannot use default test secret in production")
	}

	return nil
}

// Claims is the principal issued by the identity service. This service only
// verifies and reads it, it never issues credentials of its own.
type Claims struct {
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() uint {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0
	}
	return uint(id)
}

func GenerateJWT(userID, tenantID uint, role string) (string, error) {
	claims := Claims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ParseJWT(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
