package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simaogato/fintrack-backend/internal/usecase/auth"
)

// AuthHandler serves registration, login and the current user's profile
type AuthHandler struct {
	Service *auth.AuthService
}

// Register API
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	session, err := h.Service.Register(c.UserContext(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(sessionResponse{
		User:  newUserResponse(session.User),
		Token: session.Token,
	})
}

// Login API
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	session, err := h.Service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(sessionResponse{
		User:  newUserResponse(session.User),
		Token: session.Token,
	})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.Service.Me(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(newUserResponse(user))
}

// ChangePassword API
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	if err := h.Service.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(messageResponse{Message: "Password updated"})
}
