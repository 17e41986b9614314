package service

import (
	"ai_hub_backend/internal/model"
	"ai_hub_backend/internal/repository"
	"ai_hub_backend/internal/util"
)

type StoryService struct {
	Stories *repository.StoryRepository
	Subs    *repository.SubmissionRepository
}

func NewStoryService(stories *repository.StoryRepository, subs *repository.SubmissionRepository) *StoryService {
	return &StoryService{Stories: stories, Subs: subs}
}

type StoryRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	ImageURL   string `json:"imageUrl"`
	LinkURL    string `json:"linkUrl"`
}

func (s *StoryService) Submit(req StoryRequest) (*model.SuccessStory, error) {
	story := &model.SuccessStory{
		Name:       util.NormalizeName(req.Name),
		Email:      util.NormalizeEmail(req.Email),
		Department: req.Department,
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		LinkURL:    req.LinkURL,
	}
	if err := s.Stories.Create(story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *StoryService) List() ([]model.SuccessStory, error) {
	return s.Stories.List()
}

// Like enforces the two server-side guards: the email must have completed at
// least one quiz, and a repeat like for the same story is rejected.
func (s *StoryService) Like(storyID, email string) error {
	normEmail := util.NormalizeEmail(email)
	if normEmail == "" {
		return util.ErrLikeRequiresQuiz
	}

	qualified, err := s.Subs.HasAnyByEmail(normEmail)
	if err != nil {
		return err
	}
	if !qualified {
		return util.ErrLikeRequiresQuiz
	}

	return s.Stories.Like(storyID, normEmail)
}
