package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vidshare/internal/config"
	"vidshare/internal/models"
	"vidshare/internal/router"
	"vidshare/internal/services"
	"vidshare/internal/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	t      *testing.T
	r      *gin.Engine
	mem    *storetest.Memory
	tokens *services.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	mem := storetest.NewMemory()
	tokens := services.NewTokenService("test-secret", time.Hour)
	r := router.New(router.Dependencies{
		Store:  mem,
		Tokens: tokens,
		Config: &config.Config{SessionSecret: "test-session-secret", ClientURL: "http://client.test"},
	})
	return &testApp{t: t, r: r, mem: mem, tokens: tokens}
}

// do sends body as JSON when non-nil and authenticates with token when non-empty.
func (a *testApp) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *testApp) user(email string) (*models.User, string) {
	a.t.Helper()
	user, _, err := a.mem.GetOrCreateUser(context.Background(), email, "user")
	require.NoError(a.t, err)
	token, err := a.tokens.Issue(user.ID)
	require.NoError(a.t, err)
	return user, token
}

func (a *testApp) video(userID uint, title, description string) *models.Video {
	a.t.Helper()
	v := &models.Video{
		Title:       title,
		Description: description,
		URL:         "https://cdn.example.com/v.mp4",
		Thumbnail:   "https://cdn.example.com/t.png",
		UserID:      userID,
	}
	require.NoError(a.t, a.mem.CreateVideo(context.Background(), v))
	return v
}

func (a *testApp) view(videoID uint, n int) {
	a.t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(a.t, a.mem.CreateView(context.Background(), &models.View{VideoID: videoID}))
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type message struct {
	Message string `json:"message"`
}

type videoList struct {
	Videos []models.Video `json:"videos"`
}

type videoBody struct {
	Video models.Video `json:"video"`
}

func titles(videos []models.Video) []string {
	out := make([]string, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.Title)
	}
	return out
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
