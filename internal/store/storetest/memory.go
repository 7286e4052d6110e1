// Package storetest provides an in-memory store.Store for handler and service tests.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"vidshare/internal/models"
	"vidshare/internal/store"
)

type Memory struct {
	mu       sync.Mutex
	nextID   uint
	clock    time.Time
	users    map[uint]models.User
	videos   map[uint]models.Video
	comments map[uint]models.Comment
	views    []models.View
	likes    map[[2]uint]models.VideoLike

	// Fail, when set, is returned by every mutating call.
	Fail error
}

var _ store.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[uint]models.User{},
		videos:   map[uint]models.Video{},
		comments: map[uint]models.Comment{},
		likes:    map[[2]uint]models.VideoLike{},
	}
}

// id and tick must be called with mu held. tick advances a fake clock so
// creation order is strictly increasing.
func (m *Memory) id() uint {
	m.nextID++
	return m.nextID
}

func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) GetOrCreateUser(_ context.Context, email, username string) (*models.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, false, nil
		}
	}
	if m.Fail != nil {
		return nil, false, m.Fail
	}
	u := models.User{ID: m.id(), Email: email, Username: username, CreatedAt: m.tick()}
	m.users[u.ID] = u
	return &u, true, nil
}

func (m *Memory) GetUserWithVideos(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Videos = nil
	for _, v := range m.sortedVideos() {
		if v.UserID == id {
			u.Videos = append(u.Videos, v)
		}
	}
	return &u, nil
}

func (m *Memory) LinkGoogleID(_ context.Context, userID uint, googleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.GoogleID = googleID
	m.users[userID] = u
	return nil
}

func (m *Memory) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// sortedVideos returns videos newest first with their creator attached.
func (m *Memory) sortedVideos() []models.Video {
	out := make([]models.Video, 0, len(m.videos))
	for _, v := range m.videos {
		if u, ok := m.users[v.UserID]; ok {
			v.User = &u
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *Memory) ListVideos(context.Context) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedVideos(), nil
}

func (m *Memory) SearchVideos(_ context.Context, query string) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.Video
	for _, v := range m.sortedVideos() {
		if strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(strings.ToLower(v.Description), q) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *Memory) GetVideo(_ context.Context, id uint) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if u, ok := m.users[v.UserID]; ok {
		v.User = &u
	}
	return &v, nil
}

func (m *Memory) GetVideoWithComments(ctx context.Context, id uint) (*models.Video, error) {
	v, err := m.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.VideoID == id {
			if u, ok := m.users[c.UserID]; ok {
				c.User = &u
			}
			v.Comments = append(v.Comments, c)
		}
	}
	sort.Slice(v.Comments, func(i, j int) bool { return v.Comments[i].ID > v.Comments[j].ID })
	return v, nil
}

func (m *Memory) CreateVideo(_ context.Context, video *models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	video.ID = m.id()
	video.CreatedAt = m.tick()
	stored := *video
	stored.User = nil
	m.videos[video.ID] = stored
	return nil
}

func (m *Memory) DeleteVideo(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	if _, ok := m.videos[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.videos, id)
	for cid, c := range m.comments {
		if c.VideoID == id {
			delete(m.comments, cid)
		}
	}
	kept := m.views[:0]
	for _, v := range m.views {
		if v.VideoID != id {
			kept = append(kept, v)
		}
	}
	m.views = kept
	for k := range m.likes {
		if k[1] == id {
			delete(m.likes, k)
		}
	}
	return nil
}

func (m *Memory) CountViews(_ context.Context, videoIDs []uint) (map[uint]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[uint]bool, len(videoIDs))
	for _, id := range videoIDs {
		wanted[id] = true
	}
	counts := map[uint]int64{}
	for _, v := range m.views {
		if wanted[v.VideoID] {
			counts[v.VideoID]++
		}
	}
	return counts, nil
}

func (m *Memory) CreateView(_ context.Context, view *models.View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	view.ID = m.id()
	view.CreatedAt = m.tick()
	m.views = append(m.views, *view)
	return nil
}

func (m *Memory) Views() []models.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.View(nil), m.views...)
}

func (m *Memory) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	comment.ID = m.id()
	comment.CreatedAt = m.tick()
	if u, ok := m.users[comment.UserID]; ok {
		comment.User = &u
	}
	stored := *comment
	stored.User = nil
	m.comments[comment.ID] = stored
	return nil
}

func (m *Memory) GetComment(_ context.Context, id uint) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (m *Memory) DeleteComment(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	if _, ok := m.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *Memory) UpdateReaction(_ context.Context, userID, videoID uint, next func(current int) int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Neutral, m.Fail
	}
	key := [2]uint{userID, videoID}
	existing, ok := m.likes[key]
	current := models.Neutral
	if ok {
		current = existing.Polarity
	}
	result := next(current)
	switch {
	case result == models.Neutral:
		delete(m.likes, key)
	case ok:
		existing.Polarity = result
		m.likes[key] = existing
	default:
		m.likes[key] = models.VideoLike{ID: m.id(), UserID: userID, VideoID: videoID, Polarity: result}
	}
	return result, nil
}

func (m *Memory) GetReaction(_ context.Context, userID, videoID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likes[[2]uint{userID, videoID}].Polarity, nil
}

func (m *Memory) CountReactions(_ context.Context, videoID uint) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var likes, dislikes int64
	for k, l := range m.likes {
		if k[1] != videoID {
			continue
		}
		switch l.Polarity {
		case models.Like:
			likes++
		case models.Dislike:
			dislikes++
		}
	}
	return likes, dislikes, nil
}

// ReactionRows counts stored VideoLike rows for the pair.
func (m *Memory) ReactionRows(userID, videoID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.likes[[2]uint{userID, videoID}]; ok {
		return 1
	}
	return 0
}
