package repository

import (
	"ai_hub_backend/internal/model"
	"ai_hub_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

func (r *ConversationRepository) Create(conv *model.AIConversation) error {
	return r.DB.Create(conv).Error
}

func (r *ConversationRepository) FindByID(id string) (*model.AIConversation, error) {
	var conv model.AIConversation
	err := r.DB.First(&conv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrConversationNotFound
	}
	return &conv, err
}

func (r *ConversationRepository) AddMessage(msg *model.AIMessage) error {
	return r.DB.Create(msg).Error
}

func (r *ConversationRepository) ListMessages(conversationID string) ([]model.AIMessage, error) {
	var msgs []model.AIMessage
	err := r.DB.Where("conversation_id = ?", conversationID).
		Order("created_at asc, id asc").
		Find(&msgs).Error
	return msgs, err
}

func (r *ConversationRepository) LogHelperRequest(reqLog *model.AIHelperRequest) error {
	return r.DB.Create(reqLog).Error
}
