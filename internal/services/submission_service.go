package services

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/baharkarakas/ypa-web/internal/api/validate"
	"github.com/baharkarakas/ypa-web/internal/metrics"
	"github.com/baharkarakas/ypa-web/internal/models"
)

const (
	msgBookingOK     = "Booking request submitted successfully! We'll confirm your reservation within 2 hours during business hours."
	msgBookingFailed = "Failed to create booking. Please try again or call us directly."
	msgContactOK     = "Thank you for your message! We'll get back to you within 24 hours."
	msgContactFailed = "Failed to send message. Please try again or call us directly."
	msgReviewOK      = "Thank you for your review!"
	msgReviewFailed  = "Failed to submit review. Please try again."
)

// SubmissionService validates public forms and forwards them to the backend.
// Invalid input never leaves the process; backend failures are not retried.
type SubmissionService struct {
	remote Remote
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewSubmissionService(r Remote) *SubmissionService {
	return &SubmissionService{remote: r, policy: bluemonday.StrictPolicy(), now: time.Now}
}

// plain strips all markup. The strict policy escapes what it keeps, so the
// result is unescaped again; the backend stores plain text. Forms are
// cleaned before validation so length rules apply to what is stored.
func (s *SubmissionService) plain(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *SubmissionService) SubmitBooking(ctx context.Context, f validate.BookingForm) validate.Result {
	f.Name = s.plain(f.Name)
	f.SpecialRequests = s.plain(f.SpecialRequests)
	if errs := f.Validate(s.now()); len(errs) > 0 {
		metrics.SubmissionsTotal.WithLabelValues("booking", "invalid").Inc()
		return validate.Invalid(errs)
	}
	var created models.Booking
	if err := s.remote.Post(ctx, "/bookings", "", f.Normalize(), &created); err != nil {
		return s.failed(err, "booking", msgBookingFailed)
	}
	metrics.SubmissionsTotal.WithLabelValues("booking", "accepted").Inc()
	return validate.OK(msgBookingOK, created)
}

func (s *SubmissionService) SubmitContact(ctx context.Context, f validate.ContactForm) validate.Result {
	f.Name, f.Subject, f.Message = s.plain(f.Name), s.plain(f.Subject), s.plain(f.Message)
	if errs := f.Validate(); len(errs) > 0 {
		metrics.SubmissionsTotal.WithLabelValues("contact", "invalid").Inc()
		return validate.Invalid(errs)
	}
	var created models.ContactMessage
	if err := s.remote.Post(ctx, "/contact", "", f.Normalize(), &created); err != nil {
		return s.failed(err, "contact", msgContactFailed)
	}
	metrics.SubmissionsTotal.WithLabelValues("contact", "accepted").Inc()
	return validate.OK(msgContactOK, created)
}

func (s *SubmissionService) SubmitReview(ctx context.Context, f validate.ReviewForm) validate.Result {
	f.Name, f.Comment = s.plain(f.Name), s.plain(f.Comment)
	if errs := f.Validate(); len(errs) > 0 {
		metrics.SubmissionsTotal.WithLabelValues("review", "invalid").Inc()
		return validate.Invalid(errs)
	}
	var created models.Review
	if err := s.remote.Post(ctx, "/reviews", "", f.Normalize(), &created); err != nil {
		return s.failed(err, "review", msgReviewFailed)
	}
	metrics.SubmissionsTotal.WithLabelValues("review", "accepted").Inc()
	return validate.OK(msgReviewOK, created)
}

func (s *SubmissionService) failed(err error, kind, fallback string) validate.Result {
	metrics.SubmissionsTotal.WithLabelValues(kind, "failed").Inc()
	slog.Error("submission forward failed", "kind", kind, "err", err)
	return validate.Failed(fallback, remoteDetail(err))
}
