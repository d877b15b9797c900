// Package page implements the fixed-size pagination used by the list endpoints.
package page

import (
	"math"
	"net/http"
	"strconv"
)

// Size is the number of items per page. Clients disable forward navigation
// once a page comes back with fewer items.
const Size = 10

// MaxPage is the last page whose offset fits the store's int32 OFFSET.
const MaxPage = math.MaxInt32 / Size

// Page is a 1-based page number.
type Page int

// FromRequest reads ?page=. Missing, malformed, and non-positive values clamp to 1;
// values past MaxPage clamp to MaxPage, which is always beyond the data.
func FromRequest(r *http.Request) Page {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	if n > MaxPage {
		return MaxPage
	}
	return Page(n)
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() int32 {
	return Size
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int32 {
	switch {
	case p < 1:
		return 0
	case p > MaxPage:
		p = MaxPage
	}
	return int32(p-1) * Size
}
