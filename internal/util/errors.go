package util

import "errors"

var (
	ErrModuleNotFound       = errors.New("module not found")
	ErrIncompleteAnswers    = errors.New("all questions must be answered")
	ErrUnknownQuestion      = errors.New("answer references an unknown question")
	ErrStoryNotFound        = errors.New("story not found")
	ErrAlreadyLiked         = errors.New("story already liked by this email")
	ErrLikeRequiresQuiz     = errors.New("liking requires at least one completed quiz")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrAIProvider           = errors.New("ai provider unavailable")
)
