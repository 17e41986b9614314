package repository

import (
	"ai_hub_backend/internal/model"
	"ai_hub_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type StoryRepository struct {
	DB *gorm.DB
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{DB: db}
}

func (r *StoryRepository) Create(story *model.SuccessStory) error {
	return r.DB.Create(story).Error
}

func (r *StoryRepository) List() ([]model.SuccessStory, error) {
	var stories []model.SuccessStory
	err := r.DB.Order("created_at desc").Find(&stories).Error
	return stories, err
}

func (r *StoryRepository) FindByID(id string) (*model.SuccessStory, error) {
	var story model.SuccessStory
	err := r.DB.First(&story, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStoryNotFound
	}
	return &story, err
}

// Like records a like and bumps the counter in one transaction. The unique
// index on (story_id, email) makes a repeat like fail inside the transaction,
// so the counter can never double-count for the same email.
func (r *StoryRepository) Like(storyID, email string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var story model.SuccessStory
		if err := tx.First(&story, "id = ?", storyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrStoryNotFound
			}
			return err
		}

		like := model.StoryLike{StoryID: storyID, Email: email}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrAlreadyLiked
			}
			return err
		}

		return tx.Model(&model.SuccessStory{}).
			Where("id = ?", storyID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
}

func (r *StoryRepository) Count() (int64, error) {
	var total int64
	err := r.DB.Model(&model.SuccessStory{}).Count(&total).Error
	return total, err
}

func (r *StoryRepository) TotalLikes() (int64, error) {
	var total int64
	err := r.DB.Model(&model.SuccessStory{}).
		Select("COALESCE(SUM(likes), 0)").
		Scan(&total).Error
	return total, err
}
