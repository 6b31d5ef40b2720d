package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/codearena-go-api/internal/models"
)

// SubmissionFilter narrows submission listings. Zero values mean "no
// constraint" for that dimension.
type SubmissionFilter struct {
	UserID    string
	ProblemID string
	Status    string
	Since     *time.Time
	Limit     int
}

// SubmissionRepository exposes persistence for judged submissions.
// Submissions are append-only: there is deliberately no update or delete.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// NewSubmissionRepository constructs a submission repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

type submissionRepository struct {
	db *gorm.DB
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	query := r.db.WithContext(ctx).Model(&models.Submission{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ProblemID != "" {
		query = query.Where("problem_id = ?", filter.ProblemID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var submissions []models.Submission
	if err := query.Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
