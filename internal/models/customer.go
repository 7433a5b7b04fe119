package models

// Customer holds the contact details collected during a WhatsApp
// conversation. Address is only set for delivery orders.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}
