package models

import "time"

type Review struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	MenuItemID    string    `json:"menu_item_id,omitempty"`
	IsApproved    bool      `json:"is_approved"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type NewReview struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	MenuItemID    string `json:"menu_item_id,omitempty"`
}
