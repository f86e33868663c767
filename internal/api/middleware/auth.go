// Package middleware содержит HTTP middleware сервиса: идентификация
// пользователя, сквозной request id, rate limiting и метрики.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	"github.com/m04kA/RoomBookingService/internal/domain"
)

// UserIDHeader заголовок с идентификатором пользователя.
// Аутентификацию выполняет внешний шлюз, сервис доверяет заголовку.
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

const msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"

// Auth извлекает идентификатор пользователя из заголовка X-User-ID и
// кладет его в контекст запроса. Запросы без валидного заголовка
// отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, domain.CodeAccessDenied, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор пользователя, положенный
// в контекст middleware Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
