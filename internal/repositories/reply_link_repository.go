package repositories

import (
	"github.com/hazelcrest/backstage/backend/internal/models"
	"gorm.io/gorm"
)

// ReplyLinkRepository defines the interface for the parent/reply link table
type ReplyLinkRepository interface {
	WithTx(tx *gorm.DB) ReplyLinkRepository
	CreateReplyLink(link *models.ReplyLink) error
	CountByParentID(parentCommentID uint) (int64, error)
	IsReply(commentID uint) (bool, error)
	FindRepliesByParentID(parentCommentID uint) ([]models.Comment, error)
	ReplyCounts(parentCommentIDs []uint) (map[uint]int, error)
}

// PostgresReplyLinkRepository implements ReplyLinkRepository for PostgreSQL
type PostgresReplyLinkRepository struct {
	db *gorm.DB
}

// NewPostgresReplyLinkRepository creates a new PostgresReplyLinkRepository
func NewPostgresReplyLinkRepository(db *gorm.DB) *PostgresReplyLinkRepository {
	return &PostgresReplyLinkRepository{db: db}
}

func (r *PostgresReplyLinkRepository) WithTx(tx *gorm.DB) ReplyLinkRepository {
	return &PostgresReplyLinkRepository{db: tx}
}

func (r *PostgresReplyLinkRepository) CreateReplyLink(link *models.ReplyLink) error {
	return r.db.Create(link).Error
}

// CountByParentID counts all reply links of a parent, deleted replies
// included, so reply numbering stays dense when siblings are removed.
func (r *PostgresReplyLinkRepository) CountByParentID(parentCommentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ReplyLink{}).
		Where("parent_comment_id = ?", parentCommentID).
		Count(&count).Error
	return count, err
}

// IsReply reports whether the comment appears as the reply side of any link.
func (r *PostgresReplyLinkRepository) IsReply(commentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ReplyLink{}).
		Where("reply_comment_id = ?", commentID).
		Count(&count).Error
	return count > 0, err
}

// FindRepliesByParentID returns non-deleted replies ordered by reply number.
func (r *PostgresReplyLinkRepository) FindRepliesByParentID(parentCommentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Model(&models.Comment{}).
		Joins("JOIN reply_links ON reply_links.reply_comment_id = comments.id").
		Where("reply_links.parent_comment_id = ? AND comments.is_deleted = ?", parentCommentID, false).
		Order("reply_links.reply_number ASC").
		Find(&comments).Error
	return comments, err
}

// ReplyCounts returns the reply-link count per parent for annotating
// top-level comment listings.
func (r *PostgresReplyLinkRepository) ReplyCounts(parentCommentIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(parentCommentIDs))
	if len(parentCommentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ParentCommentID uint
		N               int
	}
	var rows []row
	err := r.db.Model(&models.ReplyLink{}).
		Select("parent_comment_id, COUNT(*) AS n").
		Where("parent_comment_id IN ?", parentCommentIDs).
		Group("parent_comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ParentCommentID] = row.N
	}
	return counts, nil
}
