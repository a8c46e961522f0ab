package user

import (
	"net/http"

	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"github.com/gin-gonic/gin"
)

// ListUsers 返回所有用户
func ListUsers(c *gin.Context) {
	users, err := List(c.Request.Context())
	if err != nil {
		serializer.RespondError(c, err)
		return
	}

	responses := make([]Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToResponse(u))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateUser 创建一个新用户
func CreateUser(c *gin.Context) {
	data, err := serializer.ParseRequest(c)
	if err != nil {
		serializer.RespondError(c, err)
		return
	}

	newUser, errs, err := Create(c.Request.Context(), data)
	if err != nil {
		serializer.RespondError(c, err)
		return
	}
	if !errs.Empty() {
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	c.JSON(http.StatusCreated, ToResponse(*newUser))
}
