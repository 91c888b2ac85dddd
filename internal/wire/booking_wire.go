package wire

import (
	"resource-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	log *zap.Logger,
) {
	r.Route("/api/resource-bookings", func(r chi.Router) {
		// POST /api/resource-bookings - book a slot (409 when unavailable)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/resource-bookings - list active bookings
		// Optional query params: ?resource_id=&start_date=&end_date=
		r.Get("/", bookingHandler.GetBookings)

		// PUT /api/resource-bookings/{id}/cancel - soft-cancel a booking
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
