package utils

import "github.com/gin-gonic/gin"

// PageHint points at a neighbouring result page.
type PageHint struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageHint `json:"next,omitempty"`
	Prev *PageHint `json:"prev,omitempty"`
}

func RespondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func RespondList(c *gin.Context, status int, count int, pagination Pagination, data any) {
	c.JSON(status, gin.H{
		"success":    true,
		"count":      count,
		"pagination": pagination,
		"data":       data,
	})
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
