package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page renders a template that needs no data beyond its title.
func Page(template, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, template, gin.H{"title": title})
	}
}
