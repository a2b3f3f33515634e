package controllers

import (
	dbpkg "moodlog/db"
	"moodlog/models"
	"moodlog/tools"

	"github.com/gin-gonic/gin"
)

func CheckUserExists(c *gin.Context, email string) bool {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return false
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return false
	}
	return true
}

func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", 500)
		return
	}

	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), 400)
		return
	}

	missing := user.MissingFields()
	if missing != "" {
		RespondError(c, "missing field "+missing, 400)
		return
	}

	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "invalid email", 400)
		return
	}

	if CheckUserExists(c, user.Email) {
		RespondError(c, "user already exists", 400)
		return
	}

	passwordEncode := tools.EncryptTextSHA512(user.Password)
	passwordEncode = user.Email + ":" + passwordEncode
	passwordEncode = tools.EncryptTextSHA512(passwordEncode)
	user.Password = passwordEncode

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), 400)
		return
	}

	user.Password = ""
	RespondSuccess(c, user)
}
