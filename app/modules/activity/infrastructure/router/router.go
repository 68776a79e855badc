package activityrouter

import (
	activityhandlers "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/handlers"
	"github.com/fairway-collective/roundhouse/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Register mounts the activity module's routes. Every route requires an
// authenticated account; rate limits are per account.
func Register(
	r chi.Router,
	handlers *activityhandlers.ActivityHandlers,
	jwtService jwt.Service,
	requestsPerSec float64,
	burst int,
) {
	limiter := activityhandlers.NewAccountRateLimiter(rate.Limit(requestsPerSec), burst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(activityhandlers.AuthMiddleware(jwtService))
		r.Use(activityhandlers.RateLimitMiddleware(limiter))

		r.Route("/activities", func(r chi.Router) {
			r.Post("/", handlers.CreateActivity)
			r.Get("/", handlers.ListActivities)

			r.Route("/{activityID}", func(r chi.Router) {
				r.Get("/", handlers.GetActivity)
				r.Patch("/", handlers.UpdateActivity)
				r.Delete("/", handlers.DeleteActivity)

				r.Post("/participants", handlers.AddParticipants)
				r.Delete("/participants/{accountID}", handlers.RemoveParticipant)
				r.Post("/attest", handlers.Attest)

				r.Post("/media", handlers.AddMedia)
				r.Delete("/media/{mediaID}", handlers.RemoveMedia)

				r.Post("/publish", handlers.Publish)
			})
		})

		r.Route("/headers/{headerID}", func(r chi.Router) {
			r.Put("/records/{ordinal}", handlers.WriteDetailRecord)
			r.Delete("/records/{ordinal}", handlers.DeleteDetailRecord)
			r.Post("/confirm", handlers.ConfirmContribution)
		})
	})
}
