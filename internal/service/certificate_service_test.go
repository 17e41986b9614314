package service

import (
	"ai_hub_backend/internal/model"
	"ai_hub_backend/internal/repository"
	"bytes"
	"testing"

	"gorm.io/gorm"
)

func seedSubmission(t *testing.T, db *gorm.DB, name, email string, moduleID, score int) {
	t.Helper()
	sub := &model.QuizSubmission{
		Name:           name,
		NameKey:        name,
		Email:          email,
		Department:     "operations",
		ModuleID:       moduleID,
		ModuleName:     "Module",
		Answers:        []byte(`{}`),
		Score:          score,
		TotalQuestions: 10,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("seed submission: %v", err)
	}
}

func newCertService(t *testing.T, db *gorm.DB, testEmail string) *CertificateService {
	t.Helper()
	return NewCertificateService(repository.NewSubmissionRepository(db), newTestBank(t), testEmail)
}

func TestEligibilityRequiresAllModules(t *testing.T) {
	db := newTestDB(t)
	svc := newCertService(t, db, "")

	email := "bob@dynamicsgex.com.au"
	for _, id := range []int{1, 2, 3} {
		seedSubmission(t, db, "bob", email, id, 8)
	}

	result, err := svc.CheckEligibility("Bob", email)
	if err != nil {
		t.Fatalf("check eligibility: %v", err)
	}
	if result.Eligible {
		t.Fatal("expected ineligible with module 4 missing")
	}
	if len(result.Modules) != 4 {
		t.Fatalf("expected 4 module statuses, got %d", len(result.Modules))
	}
	if result.Modules[3].Score != nil {
		t.Fatal("expected nil score for a module never taken")
	}
	if result.Modules[3].Passed {
		t.Fatal("untaken module must not be passed")
	}

	seedSubmission(t, db, "bob", email, 4, 7)
	result, err = svc.CheckEligibility("Bob", email)
	if err != nil {
		t.Fatalf("check eligibility: %v", err)
	}
	if !result.Eligible {
		t.Fatal("expected eligible after passing all four modules")
	}
}

func TestEligibilityUsesBestAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := newCertService(t, db, "")

	email := "carol@dynamicsgex.com.au"
	for _, id := range []int{1, 2, 3, 4} {
		seedSubmission(t, db, "carol", email, id, 9)
	}
	// A later failing retake must not revoke the earlier pass.
	seedSubmission(t, db, "carol", email, 1, 3)

	result, err := svc.CheckEligibility("Carol", email)
	if err != nil {
		t.Fatalf("check eligibility: %v", err)
	}
	if !result.Eligible {
		t.Fatal("expected best-of scoring to keep eligibility")
	}
	if result.Modules[0].Score == nil || *result.Modules[0].Score != 90.0 {
		t.Fatalf("expected best score 90.0, got %v", result.Modules[0].Score)
	}
}

func TestEligibilityThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newCertService(t, db, "")

	email := "dan@dynamicsgex.com.au"
	seedSubmission(t, db, "dan", email, 1, 7) // exactly 70%
	seedSubmission(t, db, "dan", email, 2, 6) // 60%, below threshold

	result, err := svc.CheckEligibility("Dan", email)
	if err != nil {
		t.Fatalf("check eligibility: %v", err)
	}
	if !result.Modules[0].Passed {
		t.Fatal("70% exactly must pass")
	}
	if result.Modules[1].Passed {
		t.Fatal("60% must not pass")
	}
}

func TestEligibilityNameFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newCertService(t, db, "")

	// Submissions recorded without an email match by case-folded name.
	for _, id := range []int{1, 2, 3, 4} {
		seedSubmission(t, db, "eve jones", "", id, 8)
	}

	result, err := svc.CheckEligibility("Eve Jones", "")
	if err != nil {
		t.Fatalf("check eligibility: %v", err)
	}
	if !result.Eligible {
		t.Fatal("expected name-key fallback to find submissions")
	}
}

func TestGenerateDeniedWhenIneligible(t *testing.T) {
	db := newTestDB(t)
	svc := newCertService(t, db, "")

	pdf, result, err := svc.GenerateCertificate("Nobody", "nobody@dynamicsgex.com.au")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pdf != nil {
		t.Fatal("expected no PDF for ineligible identity")
	}
	if result == nil || result.Eligible {
		t.Fatal("expected denial result")
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	db := newTestDB(t)
	svc := newCertService(t, db, "")

	email := "frank@dynamicsgex.com.au"
	for _, id := range []int{1, 2, 3, 4} {
		seedSubmission(t, db, "frank", email, id, 10)
	}

	pdf, result, err := svc.GenerateCertificate("Frank", email)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !result.Eligible {
		t.Fatal("expected eligible")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestBypassEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newCertService(t, db, "qa@dynamicsgex.com.au")

	result, err := svc.CheckEligibility("QA", "QA@DynamicsGEX.com.au")
	if err != nil {
		t.Fatalf("check eligibility: %v", err)
	}
	if !result.Eligible {
		t.Fatal("expected bypass email to be eligible with no submissions")
	}

	pdf, _, err := svc.GenerateCertificate("QA", "qa@dynamicsgex.com.au")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a PDF for bypass email")
	}
}
