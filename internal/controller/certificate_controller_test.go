package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestGenerateDenialPayload(t *testing.T) {
	r, _ := newTestRouter(t)

	// No submissions at all: the response is the eligibility payload, not a
	// document and not a bare error message.
	w := postJSON(t, r, "/api/certificate/generate", map[string]string{
		"name":  "Nobody",
		"email": "nobody@dynamicsgex.com.au",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 denial payload, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON denial, got content type %q", ct)
	}

	var resp struct {
		Data struct {
			Eligible bool   `json:"eligible"`
			Message  string `json:"message"`
			Modules  []struct {
				ID     int      `json:"id"`
				Score  *float64 `json:"score"`
				Passed bool     `json:"passed"`
			} `json:"modules"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode denial payload: %v", err)
	}
	if resp.Data.Eligible {
		t.Fatal("expected eligible=false")
	}
	if resp.Data.Message == "" {
		t.Fatal("expected a denial message")
	}
	if len(resp.Data.Modules) != 4 {
		t.Fatalf("expected 4 module statuses, got %d", len(resp.Data.Modules))
	}
	for _, m := range resp.Data.Modules {
		if m.Passed || m.Score != nil {
			t.Fatalf("untaken module must be unpassed with nil score: %+v", m)
		}
	}
}

func TestGenerateReturnsPDFWhenEligible(t *testing.T) {
	r, bank := newTestRouter(t)

	for moduleID := 1; moduleID <= 4; moduleID++ {
		w := postJSON(t, r, "/api/quiz-submit", map[string]interface{}{
			"name":       "Ivy",
			"department": "it",
			"email":      "ivy@dynamicsgex.com.au",
			"module_id":  moduleID,
			"answers":    fullAnswers(bank, moduleID),
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("submit module %d: expected 201, got %d", moduleID, w.Code)
		}
	}

	w := postJSON(t, r, "/api/certificate/generate", map[string]string{
		"name":  "Ivy",
		"email": "ivy@dynamicsgex.com.au",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF body")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}
}
