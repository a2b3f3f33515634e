package controllers

import (
	"net/http"
	"time"

	dbpkg "moodlog/db"
	"moodlog/models"
	"moodlog/tools"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email and password are required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	// valida senha (mesma regra usada no CreateUser)
	passwordEncode := tools.EncryptTextSHA512(req.Password)
	passwordEncode = user.Email + ":" + passwordEncode
	passwordEncode = tools.EncryptTextSHA512(passwordEncode)
	if user.Password != passwordEncode {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	ttl := time.Duration(getenvInt("JWT_TTL_HOURS", 24)) * time.Hour
	signed, err := signToken(getJWTSecret(), user.ID, user.Email, ttl)
	if err != nil {
		RespondError(c, "failed to sign token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}
