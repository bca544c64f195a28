package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TimelineResponse defines the structure for a timeline page.
type TimelineResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// GetHomeTimeline godoc
// @Summary      Get the home timeline
// @Description  Returns the newest messages from the viewer and everyone they follow, most recent first, capped at 100. Anonymous callers get an empty feed.
// @Tags         timeline
// @Produce      json
// @Param        limit query int false "Max messages to return" default(100)
// @Success      200  {object}  TimelineResponse
// @Router       /timeline [get]
func GetHomeTimeline(c *gin.Context) {
	// Behind OptionalAuthMiddleware: userID is absent for anonymous callers.
	viewerID := c.GetUint("userID")
	if viewerID == 0 {
		c.JSON(http.StatusOK, TimelineResponse{Messages: []MessageResponse{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	messages, err := timelineService().Home(c.Request.Context(), viewerID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []MessageResponse{}
	for _, msg := range messages {
		responses = append(responses, buildMessageResponse(c, msg, viewerID))
	}

	c.JSON(http.StatusOK, TimelineResponse{Messages: responses})
}

// GetUserMessages godoc
// @Summary      Get a user's timeline
// @Description  Returns the newest messages authored by the target user, most recent first, capped at 100.
// @Tags         timeline
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int true  "Target User ID"
// @Param        limit query int false "Max messages to return" default(100)
// @Success      200  {object}  TimelineResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/messages [get]
func GetUserMessages(c *gin.Context) {
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

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	messages, err := timelineService().User(ctx, uint(targetID), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []MessageResponse{}
	for _, msg := range messages {
		responses = append(responses, buildMessageResponse(c, msg, viewerID))
	}

	c.JSON(http.StatusOK, TimelineResponse{Messages: responses})
}
