package controller

import (
	"time"

	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/pkg/apperrors"
	"notes-sharing-be/internal/pkg/serverutils"
	"notes-sharing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const refreshTokenCookie = "refreshToken"

type AuthController struct {
	authService     service.IAuthService
	refreshTokenTTL time.Duration
}

func NewAuthController(authService service.IAuthService, refreshTokenTTL time.Duration) *AuthController {
	return &AuthController{
		authService:     authService,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (c *AuthController) Route(r fiber.Router) {
	auth := r.Group("/auth")
	auth.Post("/signup", c.Signup)
	auth.Post("/login", c.Login)
	auth.Post("/refresh-token", c.RefreshToken)
}

func (c *AuthController) Signup(ctx *fiber.Ctx) error {
	var request dto.SignupRequest
	if err := serverutils.ParseAndValidate(ctx, &request); err != nil {
		return err
	}

	if _, err := c.authService.Signup(ctx.UserContext(), &request); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"message": "User created successfully!",
	})
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var request dto.LoginRequest
	if err := serverutils.ParseAndValidate(ctx, &request); err != nil {
		return err
	}

	response, err := c.authService.Login(ctx.UserContext(), &request)
	if err != nil {
		return err
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     refreshTokenCookie,
		Value:    response.RefreshToken,
		Expires:  time.Now().Add(c.refreshTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return ctx.JSON(response)
}

func (c *AuthController) RefreshToken(ctx *fiber.Ctx) error {
	var request dto.RefreshTokenRequest
	// Body is optional here, the cookie set at login is the usual carrier.
	_ = ctx.BodyParser(&request)

	refreshToken := request.RefreshToken
	if refreshToken == "" {
		refreshToken = ctx.Cookies(refreshTokenCookie)
	}
	if refreshToken == "" {
		return apperrors.Unauthorized("Refresh token is required.")
	}

	response, err := c.authService.Refresh(ctx.UserContext(), refreshToken)
	if err != nil {
		return err
	}

	return ctx.JSON(response)
}
