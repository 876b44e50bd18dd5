package delivery

import (
	"errors"
	"net/http"
	"strconv"

	emaildto "jobtracker-backend/internal/email/dto"
	"jobtracker-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

func (h *EmailHandler) GetEmails(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	maxResults := int64(100)
	if maxStr := c.Query("max_results"); maxStr != "" {
		if parsed, err := strconv.ParseInt(maxStr, 10, 64); err == nil && parsed > 0 {
			maxResults = parsed
		}
	}

	emails, err := h.emailUsecase.GetEmails(c.Request.Context(), userID, maxResults, c.Query("category"), c.Query("company"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch emails: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails})
}

func (h *EmailHandler) GetEmailDetail(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	email, err := h.emailUsecase.GetEmailDetail(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch email details: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, email)
}

func (h *EmailHandler) GetDashboardStats(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	stats, err := h.emailUsecase.GetDashboardStats(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
