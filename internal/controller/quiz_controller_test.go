package controller

import (
	"ai_hub_backend/internal/quizbank"
	"ai_hub_backend/internal/repository"
	"ai_hub_backend/internal/service"
	"ai_hub_backend/pkg/database"
	"ai_hub_backend/pkg/logger"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*gin.Engine, *quizbank.Bank) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	bank, err := quizbank.Load()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}

	subs := repository.NewSubmissionRepository(db)
	stories := repository.NewStoryRepository(db)

	quizCtl := NewQuizController(service.NewQuizService(subs, bank, nil))
	storyCtl := NewStoryController(service.NewStoryService(stories, subs))
	certCtl := NewCertificateController(service.NewCertificateService(subs, bank, ""))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/quiz-submit", quizCtl.Submit)
	api.GET("/module-stats", quizCtl.ModuleStats)
	api.POST("/success-stories", storyCtl.Submit)
	api.GET("/success-stories", storyCtl.List)
	api.POST("/success-stories/:id/like", storyCtl.Like)
	api.POST("/certificate/check", certCtl.Check)
	api.POST("/certificate/generate", certCtl.Generate)
	return r, bank
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func fullAnswers(bank *quizbank.Bank, moduleID int) map[string]map[string]string {
	m, _ := bank.Module(moduleID)
	answers := make(map[string]map[string]string, len(m.Questions))
	for i := range m.Questions {
		q := &m.Questions[i]
		answers[strconv.Itoa(q.ID)] = map[string]string{"selected": q.CorrectOption()}
	}
	return answers
}

func TestQuizSubmitEndpoint(t *testing.T) {
	r, bank := newTestRouter(t)

	w := postJSON(t, r, "/api/quiz-submit", map[string]interface{}{
		"name":       "Alice",
		"department": "operations",
		"email":      "alice@dynamicsgex.com.au",
		"module_id":  1,
		"answers":    fullAnswers(bank, 1),
		"score":      10,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Success bool `json:"success"`
			Score   int  `json:"score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Data.Success || resp.Data.Score != 10 {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}
}

func TestQuizSubmitValidation(t *testing.T) {
	r, bank := newTestRouter(t)

	// Missing required name.
	w := postJSON(t, r, "/api/quiz-submit", map[string]interface{}{
		"department": "operations",
		"module_id":  1,
		"answers":    fullAnswers(bank, 1),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// Unknown module.
	w = postJSON(t, r, "/api/quiz-submit", map[string]interface{}{
		"name":       "Alice",
		"department": "operations",
		"module_id":  42,
		"answers":    fullAnswers(bank, 1),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown module, got %d", w.Code)
	}
}

func TestLikeEndpointStatusCodes(t *testing.T) {
	r, bank := newTestRouter(t)

	w := postJSON(t, r, "/api/success-stories", map[string]interface{}{
		"name":    "Grace",
		"email":   "grace@dynamicsgex.com.au",
		"title":   "Copilot win",
		"content": "Saved a day of work.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create story: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	likePath := "/api/success-stories/" + created.Data.ID + "/like"

	// Not qualified yet.
	w = postJSON(t, r, likePath, map[string]string{"email": "henry@dynamicsgex.com.au"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before quiz completion, got %d", w.Code)
	}

	// Qualify henry, then like twice.
	w = postJSON(t, r, "/api/quiz-submit", map[string]interface{}{
		"name":       "Henry",
		"department": "sales",
		"email":      "henry@dynamicsgex.com.au",
		"module_id":  1,
		"answers":    fullAnswers(bank, 1),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("qualify submit: expected 201, got %d", w.Code)
	}

	w = postJSON(t, r, likePath, map[string]string{"email": "henry@dynamicsgex.com.au"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on first like, got %d: %s", w.Code, w.Body.String())
	}
	w = postJSON(t, r, likePath, map[string]string{"email": "henry@dynamicsgex.com.au"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on repeat like, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/success-stories/unknown-id/like", map[string]string{"email": "henry@dynamicsgex.com.au"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown story, got %d", w.Code)
	}
}
