package serverutils

import (
	"strings"

	"notes-sharing-be/internal/pkg/token"
	"notes-sharing-be/internal/repository/memory"
	"notes-sharing-be/internal/repository/specification"
	"notes-sharing-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
)

// UserIdLocalsKey is where the auth gate stores the authenticated user id.
const UserIdLocalsKey = "user_id"

// NewAuthGate returns the middleware protecting note routes. It expects a
// Bearer access token, verifies it, and confirms the subject still exists
// before letting the request through. Resolution goes through the identity
// cache first to keep the per-request database cost down.
func NewAuthGate(tokens *token.Service, uowFactory unitofwork.RepositoryFactory, identities *memory.IdentityCache) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(ctx, "Authorization header with Bearer token is required.")
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		userId, err := tokens.VerifyAccessToken(tokenStr)
		if err != nil {
			return unauthorized(ctx, "Invalid or expired access token.")
		}

		if _, found := identities.Get(userId); !found {
			uow := uowFactory.NewUnitOfWork(ctx.UserContext())
			user, err := uow.UserRepository().FindOne(ctx.UserContext(), specification.ByID{ID: userId})
			if err != nil {
				return err
			}
			if user == nil {
				return unauthorized(ctx, "Invalid or expired access token.")
			}
			identities.Save(user)
		}

		ctx.Locals(UserIdLocalsKey, userId.String())
		return ctx.Next()
	}
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}
