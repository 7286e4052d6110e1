package handlers

import (
	"fmt"
	"net/http"
	"vidshare/internal/middleware"
	"vidshare/internal/models"
	"vidshare/internal/store"
	"vidshare/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	store store.Store
}

func NewCommentHandler(s store.Store) *CommentHandler {
	return &CommentHandler{store: s}
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (h *CommentHandler) Add(c *gin.Context) {
	user := middleware.CurrentUser(c)
	videoID, ok := pathID(c, "videoId", videoNotFound(c))
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.store.GetVideo(ctx, videoID); err != nil {
		failErr(c, err, videoNotFound(c))
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	text := utils.SanitizeText(req.Text)
	if text == "" {
		fail(c, http.StatusBadRequest, "Comment text is required")
		return
	}

	comment := models.Comment{
		Text:    text,
		UserID:  user.ID,
		VideoID: videoID,
	}
	if err := h.store.CreateComment(ctx, &comment); err != nil {
		logrus.WithError(err).WithField("video_id", videoID).Error("create comment failed")
		fail(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Delete 只允许作者删除自己的评论
func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	notFoundMsg := fmt.Sprintf("No comment found for ID - %s", c.Param("commentId"))
	commentID, ok := pathID(c, "commentId", notFoundMsg)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	comment, err := h.store.GetComment(ctx, commentID)
	if err != nil {
		failErr(c, err, notFoundMsg)
		return
	}
	if comment.UserID != user.ID {
		fail(c, http.StatusUnauthorized, "You are not authorized to delete this comment")
		return
	}

	if err := h.store.DeleteComment(ctx, commentID); err != nil {
		failErr(c, err, notFoundMsg)
		return
	}
	empty(c, http.StatusOK)
}
