package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/config"
	"github.com/2110503-CEDT68/be-project-68-group7/logger"
	"github.com/2110503-CEDT68/be-project-68-group7/middlewares"
	"github.com/2110503-CEDT68/be-project-68-group7/models"
	"github.com/2110503-CEDT68/be-project-68-group7/repository"
	"github.com/2110503-CEDT68/be-project-68-group7/utils"
)

// Register handles new account creation. Admin accounts cannot be
// registered through this endpoint; they only come from the boot seed.
func Register(users *repository.UserRepository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name      string      `json:"name" binding:"required,max=50"`
			Email     string      `json:"email" binding:"required,email"`
			Telephone string      `json:"telephone"`
			Password  string      `json:"password" binding:"required,min=6"`
			Role      models.Role `json:"role"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}

		if input.Role == "" {
			input.Role = models.RoleRenter
		}
		if !input.Role.Valid() || input.Role == models.RoleAdmin {
			utils.RespondError(c, http.StatusBadRequest, "Invalid role")
			return
		}

		if _, err := users.FindByEmail(c.Request.Context(), input.Email); err == nil {
			utils.RespondError(c, http.StatusBadRequest, "User already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.GetLogger().Error("email lookup failed", zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Failed to register user")
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, "Failed to register user")
			return
		}

		user := models.User{
			Name:      input.Name,
			Email:     input.Email,
			Telephone: input.Telephone,
			Password:  hashed,
			Role:      input.Role,
		}
		if err := users.Create(c.Request.Context(), &user); err != nil {
			logger.GetLogger().Error("create user failed", zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Failed to register user")
			return
		}

		sendTokenResponse(c, &user, http.StatusCreated, cfg)
	}
}

func Login(users *repository.UserRepository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Please provide an email and password")
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), input.Email)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		if !utils.CheckPasswordHash(input.Password, user.Password) {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		sendTokenResponse(c, user, http.StatusOK, cfg)
	}
}

// Logout overwrites the token cookie with a throwaway value that dies in
// ten seconds.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("token", "none", 10, "/", "", false, true)
		utils.RespondData(c, http.StatusOK, gin.H{})
	}
}

func GetMe(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := middlewares.CurrentUserID(c)

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			utils.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondData(c, http.StatusOK, user)
	}
}

// UpdateDetails lets the requester change name, telephone and email.
// Everything else in the payload is ignored.
func UpdateDetails(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := middlewares.CurrentUserID(c)

		var input struct {
			Name      *string `json:"name"`
			Telephone *string `json:"telephone"`
			Email     *string `json:"email" binding:"omitempty,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}

		updates := map[string]any{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Telephone != nil {
			updates["telephone"] = *input.Telephone
		}
		if input.Email != nil {
			updates["email"] = *input.Email
		}

		user, err := users.UpdateProfile(c.Request.Context(), id, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondError(c, http.StatusNotFound, "User not found")
				return
			}
			utils.RespondError(c, http.StatusBadRequest, "Failed to update user")
			return
		}
		utils.RespondData(c, http.StatusOK, user)
	}
}

// sendTokenResponse issues the JWT, delivers it as an HTTP-only cookie and
// echoes it in the body.
func sendTokenResponse(c *gin.Context, user *models.User, status int, cfg *config.Config) {
	token, err := utils.CreateToken(user.ID, user.Role, cfg.JWTExpire)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error generating token")
		return
	}

	maxAge := cfg.CookieExpireDays * 24 * 60 * 60
	c.SetCookie("token", token, maxAge, "/", "", cfg.IsProduction(), true)

	c.JSON(status, gin.H{"success": true, "token": token})
}
