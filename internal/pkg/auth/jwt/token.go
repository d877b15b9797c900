package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// TicketExpiration is how long a live-room ticket may be redeemed.
	TicketExpiration = 1 * time.Minute

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "Carrot-Market"
)

// GenerateTicket signs ticket with secretKey, valid for duration from now.
func GenerateTicket(ticket *Ticket, secretKey string, duration time.Duration) (string, error) {
	now := time.Now()

	ticket.StandardClaims = jwt.StandardClaims{
		ExpiresAt: now.Add(duration).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ticket)

	return token.SignedString([]byte(secretKey))
}

// ParseTicket parses and validates a ticket string using secretKey.
func ParseTicket(tokenString string, secretKey string) (*Ticket, error) {
	claims := &Ticket{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	if claims.Issuer != TokenIssuer {
		return nil, errors.New("unexpected token issuer")
	}

	return claims, nil
}
