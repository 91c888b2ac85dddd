package wire

import (
	"resource-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireResource(
	r chi.Router,
	resourceHandler *adaptor.ResourceHandler,
	log *zap.Logger,
) {
	r.Route("/api/resources", func(r chi.Router) {
		// Resource catalog CRUD
		r.Post("/", resourceHandler.CreateResource)
		r.Get("/", resourceHandler.GetResources)
		r.Get("/{id}", resourceHandler.GetResourceByID)
		r.Put("/{id}", resourceHandler.UpdateResource)

		// DELETE /api/resources/{id} - also purges the resource's bookings
		r.Delete("/{id}", resourceHandler.DeleteResource)

		// GET /api/resources/{id}/availability - check a time slot
		// Requires query params: ?start_time=...&end_time=...
		r.Get("/{id}/availability", resourceHandler.CheckAvailability)

		// GET /api/resources/{id}/stats - utilization over a period
		// Optional query params: ?start_date=...&end_date=...
		r.Get("/{id}/stats", resourceHandler.GetResourceStats)
	})
}
