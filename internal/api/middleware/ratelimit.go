package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	"github.com/m04kA/RoomBookingService/internal/domain"
)

const msgTooManyRequests = "превышен лимит запросов, повторите позже"

// RateLimit ограничивает общий поток запросов токен-бакетом:
// rps — устойчивая скорость пополнения, burst — допустимый всплеск.
// Лимит общий на процесс, без разбивки по клиентам.
func RateLimit(rps float64, burst int) mux.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, domain.CodeTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
