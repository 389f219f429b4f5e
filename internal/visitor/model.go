package visitor

import "time"

const (
	// DefaultOrigem tags records submitted without an explicit capture channel.
	DefaultOrigem = "culto_domingo"
	// StatusNovo marks a visitor that has not been contacted yet.
	StatusNovo = "novo"
)

// Visitor is a walk-in contact captured at an event.
type Visitor struct {
	ID            string    `json:"id"`
	Nome          string    `json:"nome"`
	Telefone      string    `json:"telefone"`
	Idade         int       `json:"idade"`
	Consentimento bool      `json:"consentimento"`
	CreatedAt     time.Time `json:"created_at"`
	IPHash        *string   `json:"ip_hash"`
	Origem        string    `json:"origem"`
	Status        string    `json:"status"`
	Nota          *string   `json:"nota"`
}

// Filter narrows a listing: Search matches nome or telefone as a
// case-insensitive substring, Status matches exactly. Empty fields are
// ignored; combined filters intersect.
type Filter struct {
	Search string
	Status string
}

// Page selects a 1-indexed slice of the filtered listing.
type Page struct {
	Number  int
	PerPage int
}

// Stats aggregates the recorded visitors.
type Stats struct {
	Total       int `json:"total"`
	ThisWeek    int `json:"this_week"`
	NewContacts int `json:"new_contacts"`
}
