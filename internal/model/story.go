package model

// SuccessStory is an employee testimonial. Stories are append-only; only the
// like counter mutates after creation.
// swagger:model SuccessStory
type SuccessStory struct {
	UUIDBase
	Name       string `gorm:"size:255;not null" json:"name"`
	Email      string `gorm:"size:255;not null" json:"email"`
	Department string `gorm:"size:100" json:"department,omitempty"`
	Title      string `gorm:"size:255;not null" json:"title"`
	Content    string `gorm:"type:text;not null" json:"content"`
	ImageURL   string `gorm:"size:512" json:"imageUrl,omitempty"`
	LinkURL    string `gorm:"size:512" json:"linkUrl,omitempty"`
	Likes      int    `gorm:"default:0" json:"likes"`
}

func (SuccessStory) TableName() string {
	return "success_stories"
}

// StoryLike records one like per (story, email). The unique index is what makes
// the like operation idempotent under concurrent requests.
type StoryLike struct {
	BaseModel
	StoryID string `gorm:"size:36;not null;uniqueIndex:idx_story_email,priority:1" json:"storyId"`
	Email   string `gorm:"size:255;not null;uniqueIndex:idx_story_email,priority:2" json:"email"`
}

func (StoryLike) TableName() string {
	return "story_likes"
}
