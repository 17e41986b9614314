package repository

import (
	"ai_hub_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(sub *model.QuizSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *SubmissionRepository) ListAll() ([]model.QuizSubmission, error) {
	var subs []model.QuizSubmission
	err := r.DB.Order("created_at desc").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) Count() (int64, error) {
	var total int64
	err := r.DB.Model(&model.QuizSubmission{}).Count(&total).Error
	return total, err
}

// FindByIdentity returns every submission matching a person. Matching is by
// normalized email when the submission carries one, falling back to the
// case-folded name for submissions recorded without an email.
func (r *SubmissionRepository) FindByIdentity(email, nameKey string) ([]model.QuizSubmission, error) {
	var subs []model.QuizSubmission
	query := r.DB.Model(&model.QuizSubmission{})
	if email != "" {
		query = query.Where("email = ? OR (email = '' AND name_key = ?)", email, nameKey)
	} else {
		query = query.Where("name_key = ?", nameKey)
	}
	err := query.Order("created_at asc").Find(&subs).Error
	return subs, err
}

// HasAnyByEmail reports whether the email has at least one recorded submission,
// regardless of score. Gates the story like operation.
func (r *SubmissionRepository) HasAnyByEmail(email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizSubmission{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ModuleStatRow is one aggregate row of per-module completion stats.
type ModuleStatRow struct {
	ModuleID    int     `gorm:"column:module_id"`
	Completions int64   `gorm:"column:completions"`
	AvgScore    float64 `gorm:"column:avg_score"`
}

// ModuleStats aggregates completion counts and average score percentage per
// module across all submissions.
func (r *SubmissionRepository) ModuleStats() ([]ModuleStatRow, error) {
	var rows []ModuleStatRow
	err := r.DB.Model(&model.QuizSubmission{}).
		Select("module_id, COUNT(*) AS completions, AVG(score * 100.0 / total_questions) AS avg_score").
		Group("module_id").
		Scan(&rows).Error
	return rows, err
}
