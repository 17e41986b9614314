package service

import (
	"ai_hub_backend/internal/quizbank"
	"ai_hub_backend/internal/repository"
	"ai_hub_backend/internal/util"
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
)

type CertificateService struct {
	Subs      *repository.SubmissionRepository
	Bank      *quizbank.Bank
	testEmail string
}

func NewCertificateService(subs *repository.SubmissionRepository, bank *quizbank.Bank, testEmail string) *CertificateService {
	return &CertificateService{Subs: subs, Bank: bank, testEmail: util.NormalizeEmail(testEmail)}
}

// ModuleStatus reports one module's standing for a person. Score is the best
// percentage across attempts, nil when the module was never taken.
type ModuleStatus struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Score  *float64 `json:"score"`
	Passed bool     `json:"passed"`
}

type EligibilityResult struct {
	Eligible bool           `json:"eligible"`
	Message  string         `json:"message"`
	Modules  []ModuleStatus `json:"modules"`
}

// CheckEligibility recomputes eligibility from stored submissions: eligible iff
// every module has at least one attempt scoring at or above the pass threshold.
// Best-of semantics: a later failing attempt never revokes a pass.
func (s *CertificateService) CheckEligibility(name, email string) (*EligibilityResult, error) {
	normEmail := util.NormalizeEmail(email)

	if s.testEmail != "" && normEmail == s.testEmail {
		return s.bypassResult(), nil
	}

	subs, err := s.Subs.FindByIdentity(normEmail, util.NameKey(name))
	if err != nil {
		return nil, err
	}

	best := make(map[int]float64, quizbank.ModuleCount)
	for _, sub := range subs {
		pct := sub.Percent()
		if cur, ok := best[sub.ModuleID]; !ok || pct > cur {
			best[sub.ModuleID] = pct
		}
	}

	result := &EligibilityResult{Eligible: true}
	for _, m := range s.Bank.Modules() {
		status := ModuleStatus{ID: m.ID, Name: m.Title}
		if pct, ok := best[m.ID]; ok {
			rounded := math.Round(pct*10) / 10
			status.Score = &rounded
			status.Passed = pct/100 >= quizbank.PassThreshold
		}
		if !status.Passed {
			result.Eligible = false
		}
		result.Modules = append(result.Modules, status)
	}

	if result.Eligible {
		result.Message = "Congratulations! You have completed all modules and earned your AI Champion certificate."
	} else {
		result.Message = "Complete all four modules with a score of 70% or higher to earn your certificate."
	}
	return result, nil
}

func (s *CertificateService) bypassResult() *EligibilityResult {
	result := &EligibilityResult{
		Eligible: true,
		Message:  "Congratulations! You have completed all modules and earned your AI Champion certificate.",
	}
	full := 100.0
	for _, m := range s.Bank.Modules() {
		score := full
		result.Modules = append(result.Modules, ModuleStatus{
			ID:     m.ID,
			Name:   m.Title,
			Score:  &score,
			Passed: true,
		})
	}
	return result
}

// GenerateCertificate re-verifies eligibility and renders the PDF. Returns
// (nil, denial, nil) when the identity is not eligible; the caller sends the
// denial payload instead of a document.
func (s *CertificateService) GenerateCertificate(name, email string) ([]byte, *EligibilityResult, error) {
	result, err := s.CheckEligibility(name, email)
	if err != nil {
		return nil, nil, err
	}
	if !result.Eligible {
		return nil, result, nil
	}

	pdfBytes, err := s.renderPDF(util.NormalizeName(name), result)
	if err != nil {
		return nil, nil, err
	}
	return pdfBytes, result, nil
}

func (s *CertificateService) renderPDF(name string, result *EligibilityResult) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("AI Champion Certificate", false)
	pdf.AddPage()

	// Border
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(30, 64, 175)
	pdf.Rect(10, 10, 277, 190, "D")

	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetTextColor(30, 64, 175)
	pdf.SetY(35)
	pdf.CellFormat(0, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(80, 80, 80)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, "Dynamics G-Ex AI Hub - AI Champion Training", "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(20, 20, 20)
	pdf.Ln(2)
	pdf.CellFormat(0, 14, name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(80, 80, 80)
	pdf.Ln(2)
	pdf.CellFormat(0, 8, "has successfully completed all four AI training modules:", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(2)
	for _, m := range result.Modules {
		pdf.CellFormat(0, 6, fmt.Sprintf("Module %d: %s", m.ID, m.Name), "", 1, "C", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 12)
	pdf.CellFormat(0, 8, "Issued on "+time.Now().Format("2 January 2006"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
