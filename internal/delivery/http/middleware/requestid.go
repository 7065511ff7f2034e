package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestID - middleware, присваивающий каждому запросу уникальный id;
// id попадает в заголовок ответа и в логи запросов
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.NewString()
		},
	})
}
