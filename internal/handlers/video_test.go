package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"vidshare/internal/models"
	"vidshare/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendedNewestFirst(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/videos", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"videos":[]}`, w.Body.String())

	user, _ := app.user("dave@example.com")
	app.video(user.ID, "first", "")
	app.video(user.ID, "second", "")
	app.video(user.ID, "third", "")

	w = app.do(http.MethodGet, "/videos", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[videoList](t, w)
	assert.Equal(t, []string{"third", "second", "first"}, titles(list.Videos))
	require.NotNil(t, list.Videos[0].User)
	assert.Equal(t, user.ID, list.Videos[0].User.ID)
}

func TestTrendingByViews(t *testing.T) {
	app := newTestApp(t)
	user, _ := app.user("erin@example.com")
	a := app.video(user.ID, "a", "")
	b := app.video(user.ID, "b", "")
	c := app.video(user.ID, "c", "")
	d := app.video(user.ID, "d", "")
	app.view(a.ID, 1)
	app.view(b.ID, 5)
	app.view(c.ID, 1)
	_ = d

	w := app.do(http.MethodGet, "/videos/trending", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[videoList](t, w)

	// 播放数相同时保持时间倒序
	assert.Equal(t, []string{"b", "c", "a", "d"}, titles(list.Videos))
	assert.Equal(t, []int64{5, 1, 1, 0}, []int64{list.Videos[0].Views, list.Videos[1].Views, list.Videos[2].Views, list.Videos[3].Views})
}

func TestSearch(t *testing.T) {
	app := newTestApp(t)
	user, _ := app.user("frank@example.com")
	app.video(user.ID, "Go concurrency patterns", "")
	app.video(user.ID, "Cooking pasta", "a short talk about GO routines")
	app.video(user.ID, "Gardening", "tomatoes")

	for _, path := range []string{"/videos/search", "/videos/search?query=", "/videos/search?query=%20%20"} {
		w := app.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "Please enter a search query", decode[message](t, w).Message)
	}

	w := app.do(http.MethodGet, "/videos/search?query=zzz", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"videos":[]}`, w.Body.String())

	w = app.do(http.MethodGet, "/videos/search?query=go", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Cooking pasta", "Go concurrency patterns"}, titles(decode[videoList](t, w).Videos))
}

func TestCreateVideo(t *testing.T) {
	app := newTestApp(t)
	user, token := app.user("gina@example.com")

	payload := map[string]string{
		"title":       "Launch",
		"description": "hello",
		"url":         "https://cdn.example.com/launch.mp4",
		"thumbnail":   "https://cdn.example.com/launch.png",
	}

	w := app.do(http.MethodPost, "/videos", payload, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	for _, missing := range []string{"title", "url", "thumbnail"} {
		body := map[string]string{}
		for k, v := range payload {
			if k != missing {
				body[k] = v
			}
		}
		w := app.do(http.MethodPost, "/videos", body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, missing)
	}

	w = app.do(http.MethodPost, "/videos", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[videoBody](t, w).Video
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Launch", created.Title)
	assert.Equal(t, user.ID, created.UserID)

	stored, err := app.mem.GetVideo(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/launch.mp4", stored.URL)
}

func TestVideoDetail(t *testing.T) {
	app := newTestApp(t)
	owner, ownerToken := app.user("hank@example.com")
	viewer, viewerToken := app.user("ivy@example.com")
	v := app.video(owner.ID, "Detail", "**bold** <script>alert(1)</script>")
	app.view(v.ID, 3)
	require.NoError(t, app.mem.CreateComment(context.Background(), &models.Comment{Text: "nice", UserID: viewer.ID, VideoID: v.ID}))
	require.Equal(t, http.StatusOK, app.do(http.MethodGet, fmt.Sprintf("/videos/%d/like", v.ID), nil, viewerToken).Code)

	path := fmt.Sprintf("/videos/%d", v.ID)

	w := app.do(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	anon := decode[videoBody](t, w).Video
	assert.Equal(t, int64(3), anon.Views)
	assert.Equal(t, int64(1), anon.Likes)
	assert.False(t, anon.IsLiked)
	assert.False(t, anon.IsVideoMine)
	require.Len(t, anon.Comments, 1)
	assert.Equal(t, "nice", anon.Comments[0].Text)
	assert.Contains(t, anon.DescriptionHTML, "<strong>bold</strong>")
	assert.NotContains(t, anon.DescriptionHTML, "<script>")

	w = app.do(http.MethodGet, path, nil, viewerToken)
	require.Equal(t, http.StatusOK, w.Code)
	seen := decode[videoBody](t, w).Video
	assert.True(t, seen.IsLiked)
	assert.False(t, seen.IsVideoMine)

	w = app.do(http.MethodGet, path, nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[videoBody](t, w).Video.IsVideoMine)

	// 可选认证下，带了无效 token 仍然拒绝
	w = app.do(http.MethodGet, path, nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodGet, "/videos/4242", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No video found for ID - 4242", decode[message](t, w).Message)

	w = app.do(http.MethodGet, "/videos/abc", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodGet, "/videos/9223372036854775808", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteVideo(t *testing.T) {
	app := newTestApp(t)
	owner, ownerToken := app.user("jack@example.com")
	_, otherToken := app.user("kate@example.com")
	v := app.video(owner.ID, "Doomed", "")
	path := fmt.Sprintf("/videos/%d", v.ID)

	w := app.do(http.MethodDelete, path, nil, otherToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, err := app.mem.GetVideo(context.Background(), v.ID)
	require.NoError(t, err)

	w = app.do(http.MethodDelete, path, nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = app.mem.GetVideo(context.Background(), v.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	w = app.do(http.MethodDelete, path, nil, ownerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddView(t *testing.T) {
	app := newTestApp(t)
	user, token := app.user("liam@example.com")
	v := app.video(user.ID, "Watched", "")

	w := app.do(http.MethodGet, "/videos/999/view", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, app.mem.Views())

	w = app.do(http.MethodGet, fmt.Sprintf("/videos/%d/view", v.ID), nil, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	w = app.do(http.MethodGet, fmt.Sprintf("/videos/%d/view", v.ID), nil, token)
	require.Equal(t, http.StatusCreated, w.Code)

	views := app.mem.Views()
	require.Len(t, views, 2)
	assert.Nil(t, views[0].UserID)
	require.NotNil(t, views[1].UserID)
	assert.Equal(t, user.ID, *views[1].UserID)
}

func TestLikeDislikeToggle(t *testing.T) {
	app := newTestApp(t)
	user, token := app.user("mia@example.com")
	v := app.video(user.ID, "Reacted", "")
	like := fmt.Sprintf("/videos/%d/like", v.ID)
	dislike := fmt.Sprintf("/videos/%d/dislike", v.ID)
	ctx := context.Background()

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, like, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/videos/999/like", nil, token).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/videos/999/dislike", nil, token).Code)

	steps := []struct {
		path string
		want int
	}{
		{like, models.Like},
		{like, models.Neutral},
		{dislike, models.Dislike},
		{like, models.Like},
		{dislike, models.Dislike},
		{dislike, models.Neutral},
	}
	for i, step := range steps {
		w := app.do(http.MethodGet, step.path, nil, token)
		require.Equal(t, http.StatusOK, w.Code, "step %d", i)
		assert.JSONEq(t, `{}`, w.Body.String())

		got, err := app.mem.GetReaction(ctx, user.ID, v.ID)
		require.NoError(t, err)
		assert.Equal(t, step.want, got, "step %d", i)
		if step.want == models.Neutral {
			assert.Zero(t, app.mem.ReactionRows(user.ID, v.ID), "step %d", i)
		} else {
			assert.Equal(t, 1, app.mem.ReactionRows(user.ID, v.ID), "step %d", i)
		}
	}
}

func TestDislikeShowsInDetail(t *testing.T) {
	app := newTestApp(t)
	owner, _ := app.user("noah@example.com")
	_, token := app.user("olga@example.com")
	v := app.video(owner.ID, "Meh", "")

	require.Equal(t, http.StatusOK, app.do(http.MethodGet, fmt.Sprintf("/videos/%d/dislike", v.ID), nil, token).Code)

	w := app.do(http.MethodGet, fmt.Sprintf("/videos/%d", v.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[videoBody](t, w).Video
	assert.Equal(t, int64(1), got.Dislikes)
	assert.Zero(t, got.Likes)
	assert.True(t, got.IsDisliked)
	assert.False(t, got.IsLiked)
}

func TestVideoDetailAlwaysReportsReactionFields(t *testing.T) {
	app := newTestApp(t)
	owner, _ := app.user("pete@example.com")
	v := app.video(owner.ID, "Quiet", "")

	w := app.do(http.MethodGet, fmt.Sprintf("/videos/%d", v.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Video map[string]any `json:"video"`
	}](t, w)
	for key, want := range map[string]any{
		"views":         float64(0),
		"likesCount":    float64(0),
		"dislikesCount": float64(0),
		"isLiked":       false,
		"isDisliked":    false,
		"isVideoMine":   false,
	} {
		got, ok := body.Video[key]
		if assert.True(t, ok, "missing %s", key) {
			assert.Equal(t, want, got, key)
		}
	}
}
