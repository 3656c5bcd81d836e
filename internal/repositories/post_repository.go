package repositories

import (
	"errors"

	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(id uint, fields map[string]interface{}) error
	UpdateCount(id uint, column string, value int) error
	SoftDelete(id uint) error
	FindByAuthorAndStatus(authorID uint, status models.PostStatus) ([]models.Post, error)
	FindPublished(limit, offset int) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) WithTx(tx *gorm.DB) PostRepository {
	return &PostgresPostRepository{db: tx}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID. Soft-deleted posts are treated as absent.
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("is_deleted = ?", false).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) UpdatePost(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&models.Post{}).Where("id = ? AND is_deleted = ?", id, false).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateCount writes a single denormalized counter column back. The caller
// (counter service) owns the read-modify-write cycle.
func (r *PostgresPostRepository) UpdateCount(id uint, column string, value int) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).Update(column, value).Error
}

func (r *PostgresPostRepository) SoftDelete(id uint) error {
	res := r.db.Model(&models.Post{}).Where("id = ? AND is_deleted = ?", id, false).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) FindByAuthorAndStatus(authorID uint, status models.PostStatus) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("author_id = ? AND status = ? AND is_deleted = ?", authorID, status, false).
		Order("updated_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) FindPublished(limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("status = ? AND is_deleted = ?", models.PostStatusPublished, false).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}
