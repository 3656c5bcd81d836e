package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv bundles the engine with direct repository access so tests can
// assert on raw row state.
type testEnv struct {
	db            *gorm.DB
	engagement    *EngagementService
	notifications *NotificationService
	counters      *CounterService
	userRepo      repositories.UserRepository
	notifRepo     repositories.NotificationRepository
	followRepo    repositories.FollowRepository
	likeRepo      repositories.LikeRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// One in-memory SQLite database per test; a second pooled connection
	// would see an empty schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.ReplyLink{},
		&models.Follow{},
		&models.Like{},
		&models.Notification{},
	))

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	replyLinkRepo := repositories.NewPostgresReplyLinkRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notifRepo := repositories.NewPostgresNotificationRepository(db)

	counters := NewCounterService(postRepo)
	notifications := NewNotificationService(notifRepo, followRepo)
	engagement := NewEngagementService(
		db, userRepo, postRepo, commentRepo, replyLinkRepo, followRepo, likeRepo,
		counters, notifications,
	)

	return &testEnv{
		db:            db,
		engagement:    engagement,
		notifications: notifications,
		counters:      counters,
		userRepo:      userRepo,
		notifRepo:     notifRepo,
		followRepo:    followRepo,
		likeRepo:      likeRepo,
	}
}

func (env *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, env.userRepo.CreateUser(user))
	return user
}

func (env *testEnv) createPublishedPost(t *testing.T, author *models.User) *models.Post {
	t.Helper()
	post, err := env.engagement.CreatePost(author, models.CreatePostRequest{
		Title:   "Test Post",
		Content: "Content",
		Status:  models.PostStatusPublished,
	})
	require.NoError(t, err)
	return post
}

func (env *testEnv) createDraftPost(t *testing.T, author *models.User) *models.Post {
	t.Helper()
	post, err := env.engagement.CreatePost(author, models.CreatePostRequest{
		Title:   "Draft Post",
		Content: "Content",
	})
	require.NoError(t, err)
	return post
}

func (env *testEnv) getPost(t *testing.T, id uint) *models.Post {
	t.Helper()
	var post models.Post
	require.NoError(t, env.db.First(&post, id).Error)
	return &post
}
