package handler

import (
	"net/http"
	"strconv"

	"warbler/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// FollowUser godoc
// @Summary      Follow a user
// @Description  Adds the target user to the viewer's followed set. Following an already-followed user is a no-op success.
// @Tags         graph
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]bool "{"following": true}"
// @Failure      400  {object}  ErrorResponse "Self-follow"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /users/{id}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID := c.GetUint("userID")
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	if err := graphService().Follow(c.Request.Context(), viewerID, uint(targetID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": true})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Removes the target user from the viewer's followed set. Unfollowing a non-followed user is a no-op success.
// @Tags         graph
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]bool "{"following": false}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/unfollow [post]
func UnfollowUser(c *gin.Context) {
	viewerID := c.GetUint("userID")
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	if err := graphService().Unfollow(c.Request.Context(), viewerID, uint(targetID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}

// GetFollowers godoc
// @Summary      List a user's followers
// @Description  Fetches the users following the target user. No ordering is guaranteed.
// @Tags         graph
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {array}   PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/followers [get]
func GetFollowers(c *gin.Context) {
	listGraphUsers(c, "followers")
}

// GetFollowing godoc
// @Summary      List who a user follows
// @Description  Fetches the users the target user follows. No ordering is guaranteed.
// @Tags         graph
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {array}   PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/following [get]
func GetFollowing(c *gin.Context) {
	listGraphUsers(c, "following")
}

func listGraphUsers(c *gin.Context, direction string) {
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

	graph := graphService()

	var list []models.User
	if direction == "followers" {
		list, err = graph.Followers(ctx, uint(targetID))
	} else {
		list, err = graph.Following(ctx, uint(targetID))
	}
	if err != nil {
		respondError(c, err)
		return
	}

	result := []PublicUserResponse{}
	for _, user := range list {
		result = append(result, buildPublicUserResponse(c, user, viewerID))
	}

	c.JSON(http.StatusOK, result)
}
