package utils

import (
    "os"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// GenerateJWT issues an HS256 token carrying the user's id and email.
func GenerateJWT(userID uint, email string) (string, error) {
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "userId": userID,
        "email":  email,
        "exp":    time.Now().Add(72 * time.Hour).Unix(),
    })
    return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
