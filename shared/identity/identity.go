package identity

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/threadlens/threadlens/shared/domain"
	internal_errors "github.com/threadlens/threadlens/shared/errors"
)

// Decoder turns an access token string into a Caller. Token issuance belongs
// to the external auth service; this side only verifies and reads claims.
type Decoder interface {
	DecodeCaller(tokenString string) (*domain.Caller, error)
}

type JwtDecoder struct {
	secretKey string
}

func New(secretKey string) *JwtDecoder {
	return &JwtDecoder{secretKey: secretKey}
}

func (j *JwtDecoder) DecodeCaller(tokenString string) (*domain.Caller, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]),
				StatusCode: http.StatusUnauthorized,
			}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}
	username, _ := claims["username"].(string)
	staff, _ := claims["staff"].(bool)

	caller := &domain.Caller{
		Id:       domain.UserId(uid),
		Username: username,
		Staff:    staff,
	}

	// Group ids arrive as a JSON array of numbers.
	if raw, ok := claims["groups"].([]interface{}); ok {
		caller.Groups = make([]int64, 0, len(raw))
		for _, g := range raw {
			if id, ok := g.(float64); ok {
				caller.Groups = append(caller.Groups, int64(id))
			}
		}
	}

	return caller, nil
}
