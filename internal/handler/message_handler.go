package handler

import (
	"net/http"
	"strconv"
	"time"

	"warbler/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// MessageInput defines the structure for posting a message.
type MessageInput struct {
	Text string `json:"text" binding:"required,max=140" example:"hello warbler"`
}

// MessageAuthor is the compact author representation embedded in a message.
type MessageAuthor struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"testuser"`
	ImageURL string `json:"image_url"`
}

// MessageResponse defines the structure for a single message.
type MessageResponse struct {
	ID        uint          `json:"id" example:"1"`
	Text      string        `json:"text" example:"hello warbler"`
	CreatedAt time.Time     `json:"created_at"`
	Author    MessageAuthor `json:"author"`
	LikeCount int64         `json:"like_count"`
	LikedByMe bool          `json:"liked_by_me"`
}

// endregion

// region --- Message Handlers ---

// CreateMessage godoc
// @Summary      Post a message
// @Description  Creates a new message authored by the authenticated user. The creation timestamp is server-assigned.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MessageInput true "Message text (1-140 chars)"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Empty or oversized text"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Author no longer exists"
// @Router       /messages [post]
func CreateMessage(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := messageService().Post(c.Request.Context(), viewerID, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, buildMessageResponse(c, *msg, viewerID))
}

// GetMessageByID godoc
// @Summary      Get a message
// @Description  Retrieves a single message with its author and like count.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id} [get]
func GetMessageByID(c *gin.Context) {
	viewerID := c.GetUint("userID")
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	msg, found, err := messageService().Get(c.Request.Context(), uint(messageID))
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, buildMessageResponse(c, *msg, viewerID))
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Description  Deletes a message and its likes. Only the author (or an admin) may delete a message.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  map[string]string "{"message": "Message deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id} [delete]
func DeleteMessage(c *gin.Context) {
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

// ToggleLike godoc
// @Summary      Toggle a like on a message
// @Description  Likes the message if not yet liked by the viewer, unlikes it otherwise.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  map[string]bool "{"liked": true}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id}/like [post]
func ToggleLike(c *gin.Context) {
	viewerID := c.GetUint("userID")
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	liked, err := messageService().ToggleLike(c.Request.Context(), viewerID, uint(messageID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// GetUserLikes godoc
// @Summary      List a user's liked messages
// @Description  Fetches all messages the target user has liked. No ordering is guaranteed.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {array}   MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/likes [get]
func GetUserLikes(c *gin.Context) {
	viewerID := c.GetUint("userID")
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	ctx := c.Request.Context()
	if _, found, err := userService().GetByID(ctx, uint(targetID)); err != nil {
		respondError(c, err)
		return
	} else if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	liked, err := messageService().LikedMessages(ctx, uint(targetID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []MessageResponse{}
	for _, msg := range liked {
		responses = append(responses, buildMessageResponse(c, msg, viewerID))
	}

	c.JSON(http.StatusOK, responses)
}

// endregion

// region --- Helpers ---

func buildMessageResponse(c *gin.Context, msg models.Message, viewerID uint) MessageResponse {
	ctx := c.Request.Context()
	svc := messageService()

	likeCount, _ := svc.MessageLikeCount(ctx, msg.ID)
	likedByMe := false
	if viewerID != 0 {
		likedByMe, _ = svc.IsLiked(ctx, viewerID, msg.ID)
	}

	return MessageResponse{
		ID:        msg.ID,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
		Author: MessageAuthor{
			ID:       msg.User.ID,
			Username: msg.User.Username,
			ImageURL: msg.User.ImageURL,
		},
		LikeCount: likeCount,
		LikedByMe: likedByMe,
	}
}

// endregion
