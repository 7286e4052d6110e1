package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"vidshare/internal/middleware"
	"vidshare/internal/models"
	"vidshare/internal/services"
	"vidshare/internal/store"
	"vidshare/internal/utils"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	store     store.Store
	videos    *services.VideoService
	reactions *services.ReactionService
}

func NewVideoHandler(s store.Store, videos *services.VideoService, reactions *services.ReactionService) *VideoHandler {
	return &VideoHandler{
		store:     s,
		videos:    videos,
		reactions: reactions,
	}
}

func videoNotFound(c *gin.Context) string {
	return fmt.Sprintf("No video found for ID - %s", c.Param("videoId"))
}

// Recommended 所有视频，最新的在前
func (h *VideoHandler) Recommended(c *gin.Context) {
	videos, err := h.videos.Recommended(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": nonNil(videos)})
}

func (h *VideoHandler) Trending(c *gin.Context) {
	videos, err := h.videos.Trending(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": nonNil(videos)})
}

func (h *VideoHandler) Search(c *gin.Context) {
	query, ok := c.GetQuery("query")
	query = strings.TrimSpace(query)
	if !ok || query == "" {
		fail(c, http.StatusBadRequest, "Please enter a search query")
		return
	}

	videos, err := h.videos.Search(c.Request.Context(), query)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": nonNil(videos)})
}

type createVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
}

func (h *VideoHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	video := models.Video{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		URL:         strings.TrimSpace(req.URL),
		Thumbnail:   strings.TrimSpace(req.Thumbnail),
		UserID:      user.ID,
	}
	if video.Title == "" || video.URL == "" || video.Thumbnail == "" {
		fail(c, http.StatusBadRequest, "Please provide a title, url and thumbnail")
		return
	}

	if err := h.store.CreateVideo(c.Request.Context(), &video); err != nil {
		middleware.Fail(c, err)
		return
	}
	video.User = user
	c.JSON(http.StatusCreated, gin.H{"video": video})
}

// Detail 视频详情：评论、播放数、点赞数以及当前用户的点赞状态
func (h *VideoHandler) Detail(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", videoNotFound(c))
	if !ok {
		return
	}
	ctx := c.Request.Context()

	video, err := h.store.GetVideoWithComments(ctx, videoID)
	if err != nil {
		failErr(c, err, videoNotFound(c))
		return
	}

	counts, err := h.store.CountViews(ctx, []uint{videoID})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	video.Views = counts[videoID]

	var viewerID uint
	if user := middleware.CurrentUser(c); user != nil {
		viewerID = user.ID
		video.IsVideoMine = user.ID == video.UserID
	}
	if err := h.reactions.Summary(ctx, video, viewerID); err != nil {
		middleware.Fail(c, err)
		return
	}
	video.DescriptionHTML = utils.RenderMarkdown(video.Description)

	c.JSON(http.StatusOK, gin.H{"video": video})
}

func (h *VideoHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	videoID, ok := pathID(c, "videoId", videoNotFound(c))
	if !ok {
		return
	}
	ctx := c.Request.Context()

	video, err := h.store.GetVideo(ctx, videoID)
	if err != nil {
		failErr(c, err, videoNotFound(c))
		return
	}
	if video.UserID != user.ID {
		fail(c, http.StatusUnauthorized, "You are not authorized to delete this video")
		return
	}

	if err := h.store.DeleteVideo(ctx, videoID); err != nil {
		failErr(c, err, videoNotFound(c))
		return
	}
	empty(c, http.StatusOK)
}

// AddView records a view; anonymous viewers are stored without a user.
func (h *VideoHandler) AddView(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", videoNotFound(c))
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.store.GetVideo(ctx, videoID); err != nil {
		failErr(c, err, videoNotFound(c))
		return
	}

	view := models.View{VideoID: videoID}
	if user := middleware.CurrentUser(c); user != nil {
		view.UserID = &user.ID
	}
	if err := h.store.CreateView(ctx, &view); err != nil {
		middleware.Fail(c, err)
		return
	}
	empty(c, http.StatusCreated)
}

func (h *VideoHandler) Like(c *gin.Context) {
	h.react(c, h.reactions.Like)
}

func (h *VideoHandler) Dislike(c *gin.Context) {
	h.react(c, h.reactions.Dislike)
}

func (h *VideoHandler) react(c *gin.Context, apply func(ctx context.Context, userID, videoID uint) (int, error)) {
	user := middleware.CurrentUser(c)
	videoID, ok := pathID(c, "videoId", videoNotFound(c))
	if !ok {
		return
	}

	if _, err := apply(c.Request.Context(), user.ID, videoID); err != nil {
		failErr(c, err, videoNotFound(c))
		return
	}
	empty(c, http.StatusOK)
}

// nonNil keeps empty listings encoded as [] rather than null.
func nonNil(videos []models.Video) []models.Video {
	if videos == nil {
		return []models.Video{}
	}
	return videos
}
