package store

import (
	"context"
	"vidshare/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	// GetOrCreateUser returns the user owning email, creating it on first sight.
	// created reports whether a new row was inserted.
	GetOrCreateUser(ctx context.Context, email, username string) (user *models.User, created bool, err error)
	GetUserWithVideos(ctx context.Context, id uint) (*models.User, error)
	LinkGoogleID(ctx context.Context, userID uint, googleID string) error
}

type VideoStore interface {
	ListVideos(ctx context.Context) ([]models.Video, error)
	SearchVideos(ctx context.Context, query string) ([]models.Video, error)
	GetVideo(ctx context.Context, id uint) (*models.Video, error)
	GetVideoWithComments(ctx context.Context, id uint) (*models.Video, error)
	CreateVideo(ctx context.Context, video *models.Video) error
	DeleteVideo(ctx context.Context, id uint) error
	// CountViews returns view totals keyed by video id; videos without views are absent.
	CountViews(ctx context.Context, videoIDs []uint) (map[uint]int64, error)
	CreateView(ctx context.Context, view *models.View) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uint) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type ReactionStore interface {
	// UpdateReaction atomically replaces the (user, video) polarity with next(current).
	// A result of models.Neutral removes the row. It returns the stored polarity.
	UpdateReaction(ctx context.Context, userID, videoID uint, next func(current int) int) (int, error)
	GetReaction(ctx context.Context, userID, videoID uint) (int, error)
	CountReactions(ctx context.Context, videoID uint) (likes, dislikes int64, err error)
}

// Store is the data-access handle injected into handlers and services.
type Store interface {
	UserStore
	VideoStore
	CommentStore
	ReactionStore
	Ping(ctx context.Context) error
}

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	return sqlDB.PingContext(ctx)
}

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrapf(err, format, args...)
}
