package services

import (
	"math"
	"strconv"

	"github.com/baharkarakas/ypa-web/internal/models"
)

type BookingStats struct {
	Total      int            `json:"total"`
	Guests     int            `json:"guests"`
	ByStatus   map[string]int `json:"by_status"`
	ByMonth    map[string]int `json:"by_month"`    // "2006-01"
	PartySizes map[string]int `json:"party_sizes"` // 1-2, 3-4, 5-8, 9-12
}

type MessageStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

type ReviewStats struct {
	Total         int            `json:"total"`
	Approved      int            `json:"approved"`
	Pending       int            `json:"pending"`
	AverageRating float64        `json:"average_rating"`
	Distribution  map[string]int `json:"distribution"` // "1".."5"
}

type Report struct {
	Bookings BookingStats `json:"bookings"`
	Messages MessageStats `json:"messages"`
	Reviews  ReviewStats  `json:"reviews"`
}

// BuildReport aggregates the raw lists. It does no I/O.
func BuildReport(bookings []models.Booking, messages []models.ContactMessage, reviews []models.Review) Report {
	r := Report{
		Bookings: BookingStats{
			ByStatus:   map[string]int{},
			ByMonth:    map[string]int{},
			PartySizes: map[string]int{},
		},
		Reviews: ReviewStats{Distribution: map[string]int{}},
	}
	for _, s := range []models.BookingStatus{models.BookingPending, models.BookingConfirmed, models.BookingCancelled} {
		r.Bookings.ByStatus[string(s)] = 0
	}
	for i := 1; i <= 5; i++ {
		r.Reviews.Distribution[strconv.Itoa(i)] = 0
	}

	for _, b := range bookings {
		r.Bookings.Total++
		r.Bookings.Guests += b.PartySize
		r.Bookings.ByStatus[string(b.Status)]++
		if len(b.BookingDate) >= 7 {
			r.Bookings.ByMonth[b.BookingDate[:7]]++
		}
		r.Bookings.PartySizes[partyBucket(b.PartySize)]++
	}

	r.Messages.Total = len(messages)
	for _, m := range messages {
		if !m.IsRead {
			r.Messages.Unread++
		}
	}

	sum, rated := 0, 0
	for _, rv := range reviews {
		r.Reviews.Total++
		if rv.IsApproved {
			r.Reviews.Approved++
		} else {
			r.Reviews.Pending++
		}
		// out-of-range ratings count as reviews but not toward the average
		if rv.Rating < 1 || rv.Rating > 5 {
			continue
		}
		sum += rv.Rating
		rated++
		r.Reviews.Distribution[strconv.Itoa(rv.Rating)]++
	}
	if rated > 0 {
		avg := float64(sum) / float64(rated)
		r.Reviews.AverageRating = math.Round(avg*10) / 10
	}
	return r
}

func partyBucket(n int) string {
	switch {
	case n <= 2:
		return "1-2"
	case n <= 4:
		return "3-4"
	case n <= 8:
		return "5-8"
	default:
		return "9-12"
	}
}
