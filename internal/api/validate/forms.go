package validate

import (
	"net/url"
	"strings"
	"time"

	"github.com/baharkarakas/ypa-web/internal/models"
)

const (
	MsgName      = "Name must be at least 2 characters long"
	MsgEmail     = "Please enter a valid email address"
	MsgPhone     = "Please enter a valid phone number"
	MsgDate      = "Please select a valid future date"
	MsgTime      = "Please select a time"
	MsgPartySize = "Party size must be between 1 and 12 people"
	MsgSubject   = "Subject must be at least 3 characters long"
	MsgMessage   = "Message must be at least 10 characters long"
	MsgRating    = "Rating must be between 1 and 5"
	MsgComment   = "Comment must be at least 10 characters long"
)

// BookingForm is the raw table reservation form.
type BookingForm struct {
	Name            string `json:"customer_name"`
	Email           string `json:"customer_email"`
	Phone           string `json:"customer_phone"`
	Date            string `json:"booking_date"`
	Time            string `json:"booking_time"`
	PartySize       Raw    `json:"party_size"`
	SpecialRequests string `json:"special_requests"`
}

func BookingFormFrom(v url.Values) BookingForm {
	return BookingForm{
		Name:            v.Get("customer_name"),
		Email:           v.Get("customer_email"),
		Phone:           v.Get("customer_phone"),
		Date:            v.Get("booking_date"),
		Time:            v.Get("booking_time"),
		PartySize:       Raw(v.Get("party_size")),
		SpecialRequests: v.Get("special_requests"),
	}
}

// Validate collects every violated rule, in field order.
func (f BookingForm) Validate(now time.Time) Errs {
	var errs Errs
	errs.add(check(MinLen(f.Name, 2), "customer_name", MsgName))
	errs.add(check(Email(f.Email), "customer_email", MsgEmail))
	errs.add(check(Phone(f.Phone), "customer_phone", MsgPhone))
	errs.add(check(BookingDate(f.Date, now), "booking_date", MsgDate))
	errs.add(check(strings.TrimSpace(f.Time) != "", "booking_time", MsgTime))
	_, ok := PartySize(string(f.PartySize))
	errs.add(check(ok, "party_size", MsgPartySize))
	return errs
}

// Normalize trims text and lowercases the email. Call after Validate.
func (f BookingForm) Normalize() models.NewBooking {
	n, _ := PartySize(string(f.PartySize))
	return models.NewBooking{
		CustomerName:    strings.TrimSpace(f.Name),
		CustomerEmail:   normEmail(f.Email),
		CustomerPhone:   strings.TrimSpace(f.Phone),
		BookingDate:     strings.TrimSpace(f.Date),
		BookingTime:     strings.TrimSpace(f.Time),
		PartySize:       n,
		SpecialRequests: strings.TrimSpace(f.SpecialRequests),
	}
}

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func ContactFormFrom(v url.Values) ContactForm {
	return ContactForm{
		Name:    v.Get("name"),
		Email:   v.Get("email"),
		Phone:   v.Get("phone"),
		Subject: v.Get("subject"),
		Message: v.Get("message"),
	}
}

// Validate checks the phone only when one was given.
func (f ContactForm) Validate() Errs {
	var errs Errs
	errs.add(check(MinLen(f.Name, 2), "name", MsgName))
	errs.add(check(Email(f.Email), "email", MsgEmail))
	if f.Phone != "" {
		errs.add(check(Phone(f.Phone), "phone", MsgPhone))
	}
	errs.add(check(MinLen(f.Subject, 3), "subject", MsgSubject))
	errs.add(check(MinLen(f.Message, 10), "message", MsgMessage))
	return errs
}

func (f ContactForm) Normalize() models.NewContactMessage {
	return models.NewContactMessage{
		Name:    strings.TrimSpace(f.Name),
		Email:   normEmail(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

type ReviewForm struct {
	Name       string `json:"customer_name"`
	Email      string `json:"customer_email"`
	Rating     Raw    `json:"rating"`
	Comment    string `json:"comment"`
	MenuItemID string `json:"menu_item_id"`
}

func ReviewFormFrom(v url.Values) ReviewForm {
	return ReviewForm{
		Name:       v.Get("customer_name"),
		Email:      v.Get("customer_email"),
		Rating:     Raw(v.Get("rating")),
		Comment:    v.Get("comment"),
		MenuItemID: v.Get("menu_item_id"),
	}
}

// Validate treats the email as optional.
func (f ReviewForm) Validate() Errs {
	var errs Errs
	errs.add(check(MinLen(f.Name, 2), "customer_name", MsgName))
	if f.Email != "" {
		errs.add(check(Email(f.Email), "customer_email", MsgEmail))
	}
	_, ok := Rating(string(f.Rating))
	errs.add(check(ok, "rating", MsgRating))
	errs.add(check(MinLen(f.Comment, 10), "comment", MsgComment))
	return errs
}

func (f ReviewForm) Normalize() models.NewReview {
	n, _ := Rating(string(f.Rating))
	return models.NewReview{
		CustomerName:  strings.TrimSpace(f.Name),
		CustomerEmail: normEmail(f.Email),
		Rating:        n,
		Comment:       strings.TrimSpace(f.Comment),
		MenuItemID:    strings.TrimSpace(f.MenuItemID),
	}
}

func normEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
