package handler

import (
	"errors"

	"notesapp/dto"
	"notesapp/usecase"
	"notesapp/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, accountsService *usecase.AccountsService) {
	var input usecase.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	account, token, err := accountsService.Register(c, input)
	if err != nil {
		utils.TrackAuthAttempt("failure", "register")
		respondError(c, "register", err)
		return
	}

	utils.TrackAuthAttempt("success", "register")
	utils.Success(c, gin.H{
		"user":        dto.ToUserResponse(account.Snapshot()),
		"accessToken": token,
		"message":     "Registration successful",
	})
}

func LoginHandler(c *gin.Context, accountsService *usecase.AccountsService) {
	var input usecase.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	account, token, err := accountsService.Login(c, input)
	if err != nil {
		if !isValidation(err) {
			utils.TrackAuthAttempt("failure", "login")
		}
		respondError(c, "login", err)
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"email":       account.Email,
		"accessToken": token,
		"message":     "Login successful",
	})
}

func GetUserHandler(c *gin.Context, accountsService *usecase.AccountsService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := accountsService.GetProfile(c, userID)
	if err != nil {
		respondError(c, "get_user", err)
		return
	}

	utils.Success(c, gin.H{"user": dto.ToUserResponse(*profile)})
}

func isValidation(err error) bool {
	var validationErr *usecase.ValidationError
	return errors.As(err, &validationErr)
}
