package model

import "encoding/json"

// AIConversation threads assistant exchanges across requests. The id is handed
// back to the client as conversation_id and replays history on follow-ups.
type AIConversation struct {
	UUIDBase
	Kind         string `gorm:"size:20;not null" json:"kind"` // helper, chat, module
	ModuleID     int    `gorm:"default:0" json:"moduleId,omitempty"`
	ModuleName   string `gorm:"size:255" json:"moduleName,omitempty"`
	SystemPrompt string `gorm:"type:text" json:"-"`
}

func (AIConversation) TableName() string {
	return "ai_conversations"
}

type AIMessage struct {
	BaseModel
	ConversationID string `gorm:"size:36;index;not null" json:"conversationId"`
	Role           string `gorm:"size:20;not null" json:"role"`
	Content        string `gorm:"type:text;not null" json:"content"`
}

func (AIMessage) TableName() string {
	return "ai_messages"
}

// AIHelperRequest logs each ai-helper exchange for adoption analytics.
type AIHelperRequest struct {
	BaseModel
	Name       string          `gorm:"size:255" json:"name"`
	Department string          `gorm:"size:100" json:"department"`
	Challenge  string          `gorm:"type:text" json:"challenge"`
	Response   json.RawMessage `gorm:"type:json" json:"response"`
}

func (AIHelperRequest) TableName() string {
	return "ai_helper_requests"
}
