package jwt

import "github.com/golang-jwt/jwt"

// Ticket defines the JWT claims of a live-room ticket.
// A ticket lets a browser open a websocket to one live room from an origin that
// does not carry the session cookie.
type Ticket struct {
	// StandardClaims embeds Exp (Expiration), Iat (Issued At), and Iss (Issuer).
	jwt.StandardClaims `json:"standard_claims"`

	// UserID is the authenticated session user the ticket was issued to.
	UserID int64 `json:"uid"`

	// Room is the live room key (for example "chat:12" or "stream:3") the ticket opens.
	Room string `json:"room"`
}
