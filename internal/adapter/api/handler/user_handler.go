package handler

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/domain/entity"
	"artifex/internal/usecase"
	"artifex/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type socialLinksRequest struct {
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
}

type updateUserRequest struct {
	Username       *string             `json:"username" validate:"omitempty,max=50"`
	Email          *string             `json:"email" validate:"omitempty,email"`
	UserType       *string             `json:"userType" validate:"omitempty,oneof=artist collector enthusiast"`
	DisplayName    *string             `json:"displayName" validate:"omitempty,max=100"`
	Bio            *string             `json:"bio" validate:"omitempty,max=1000"`
	ProfilePicture *string             `json:"profilePicture" validate:"omitempty,url"`
	Location       *string             `json:"location" validate:"omitempty,max=100"`
	Website        *string             `json:"website" validate:"omitempty,url"`
	SocialLinks    *socialLinksRequest `json:"socialLinks"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}

func (h *UserHandler) ListArtists(c echo.Context) error {
	artists, err := h.userUseCase.ListArtists(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, artists)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, user)
}

// UpdateUser never touches the password; see ChangePassword.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.UpdateUserInput{
		Username:       req.Username,
		Email:          req.Email,
		UserType:       req.UserType,
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		Location:       req.Location,
		Website:        req.Website,
	}
	if req.SocialLinks != nil {
		input.SocialLinks = &entity.SocialLinks{
			Instagram: req.SocialLinks.Instagram,
			Twitter:   req.SocialLinks.Twitter,
			Facebook:  req.SocialLinks.Facebook,
		}
	}

	user, err := h.userUseCase.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	if err := h.userUseCase.ChangePassword(c.Request().Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Password updated successfully")
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.userUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "User deleted successfully")
}
