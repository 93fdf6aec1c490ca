package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pokebox/pokebox/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type catchRequest struct {
	Name string `json:"name"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		// A duplicate email answers in-band with a 200, not a 409.
		c.JSON(http.StatusOK, gin.H{"message": "This email already exists"})
	case err != nil:
		s.logger.Error(c.Request.Context(), "register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "There is an internal server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s is created successfully", user.Email)})
	}
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case err != nil:
		s.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "There is an internal server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
	}
}

func (s *Server) lookup(c *gin.Context) {
	data, err := s.catalog.Lookup(c.Request.Context(), c.Param("name"))
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Your Pokémon was not found!"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching the Pokémon data"})
	default:
		c.JSON(http.StatusOK, gin.H{"data": data})
	}
}

func (s *Server) catch(c *gin.Context) {
	var req catchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Pokemon name is required"})
		return
	}

	record, err := s.pokemons.Catch(c.Request.Context(), userID(c), req.Name)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Pokemon name is required"})
	case err != nil:
		s.logger.Error(c.Request.Context(), "catch failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Pokemon caught", "data": record})
	}
}

func (s *Server) release(c *gin.Context) {
	err := s.pokemons.Release(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Pokemon not found or not owned by user"})
	case err != nil:
		s.logger.Error(c.Request.Context(), "release failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while releasing the Pokemon"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Pokemon is released"})
	}
}

func (s *Server) caughtList(c *gin.Context) {
	records, err := s.pokemons.List(c.Request.Context(), userID(c))
	if err != nil {
		s.logger.Error(c.Request.Context(), "list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching caught Pokémon details"})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Your Pokémon not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}
