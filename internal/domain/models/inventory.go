package models

import "time"

// Site is a physical telecom site. Every generated specification table
// references site(id) with ON DELETE CASCADE.
type Site struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SiteType  string    `json:"siteType"`
	Region    *string   `json:"region,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Equipment is installed on a site
type Equipment struct {
	ID            string    `json:"id"`
	SiteID        string    `json:"siteId"`
	Name          string    `json:"name"`
	EquipmentType string    `json:"equipmentType"`
	Model         *string   `json:"model,omitempty"`
	Manufacturer  *string   `json:"manufacturer,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Notification is an admin-facing message, e.g. a warning that a
// specification update discarded generated table rows.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is an account allowed to sign in
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
