package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AdminDeleteUser godoc
// @Summary      Delete a user account (moderation)
// @Description  Removes a user and cascades to their messages, likes and follow edges.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string "{"message": "Account deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{id} [delete]
func AdminDeleteUser(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := userService().Delete(c.Request.Context(), uint(targetID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// AdminDeleteMessage godoc
// @Summary      Delete any message (moderation)
// @Description  Removes a message regardless of author. The admin check itself happens in the service's author-or-admin policy.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  map[string]string "{"message": "Message deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/messages/{id} [delete]
func AdminDeleteMessage(c *gin.Context) {
	viewerID := c.GetUint("userID")
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	if err := messageService().Delete(c.Request.Context(), viewerID, uint(messageID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
