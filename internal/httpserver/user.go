package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	usersvc "storefront/internal/service/user"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authedUser struct {
	domain.User
	Token string `json:"token"`
}

func registerHandler(svc *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req usersvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		u, token, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, authedUser{User: *u, Token: token})
	}
}

func loginHandler(svc *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		u, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, authedUser{User: *u, Token: token})
	}
}

func profileHandler(svc *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		u, err := svc.GetProfile(c.Request.Context(), caller.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, u)
	}
}

func updateProfileHandler(svc *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		var req usersvc.UpdateProfileInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		u, err := svc.UpdateProfile(c.Request.Context(), caller.ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, u)
	}
}

func listUsersHandler(svc *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if users == nil {
			users = []domain.User{}
		}
		respondOK(c, http.StatusOK, users)
	}
}

func deleteUserHandler(svc *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, gin.H{"deleted": true})
	}
}
