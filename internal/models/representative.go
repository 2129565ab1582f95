// internal/models/representative.go
package models

// Representative is a human advisor eligible to be assigned to a user's request.
// The roster is fixed for the lifetime of the process and injected at construction.
type Representative struct {
	ID              string   `json:"id" mapstructure:"id"`
	Name            string   `json:"name" mapstructure:"name"`
	Surname         string   `json:"surname" mapstructure:"surname"`
	Email           string   `json:"email" mapstructure:"email"`
	Specializations []string `json:"specializations" mapstructure:"specializations"`
	Rating          float64  `json:"rating" mapstructure:"rating"` // 1-5
	ActiveClients   int      `json:"activeClients" mapstructure:"active_clients"`
	IsAvailable     bool     `json:"isAvailable" mapstructure:"is_available"`
}

// SpecializesIn reports whether the representative handles the given insurance line.
func (r Representative) SpecializesIn(insuranceType string) bool {
	for _, s := range r.Specializations {
		if s == insuranceType {
			return true
		}
	}
	return false
}
