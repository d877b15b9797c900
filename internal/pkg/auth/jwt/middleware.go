package jwt

import (
	"net/http"
	"strings"
)

// TicketParam is the query parameter a browser uses to pass a ticket on a websocket URL.
const TicketParam = "ticket"

// TicketFromRequest returns the raw ticket from the ?ticket= parameter or an
// "Authorization: Bearer" header, or "" when neither is present.
func TicketFromRequest(r *http.Request) string {
	if t := r.URL.Query().Get(TicketParam); t != "" {
		return t
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

// VerifyTicket parses the request's ticket and checks that it opens room.
// It returns nil when the request has no usable ticket for room.
func VerifyTicket(r *http.Request, secretKey, room string) *Ticket {
	raw := TicketFromRequest(r)
	if raw == "" {
		return nil
	}

	ticket, err := ParseTicket(raw, secretKey)
	if err != nil || ticket.Room != room || ticket.UserID <= 0 {
		return nil
	}

	return ticket
}
