package service

import (
	"ai_hub_backend/internal/repository"
	"testing"
)

func TestDashboardAggregation(t *testing.T) {
	db := newTestDB(t)
	subs := repository.NewSubmissionRepository(db)
	stories := repository.NewStoryRepository(db)
	svc := NewDashboardService(subs, stories)
	storySvc := NewStoryService(stories, subs)

	// Alice passes modules 1 and 2 and shares a story: 2*10 + 15 = 35.
	alice := "alice@dynamicsgex.com.au"
	seedSubmission(t, db, "alice", alice, 1, 8)
	seedSubmission(t, db, "alice", alice, 2, 9)
	if _, err := storySvc.Submit(StoryRequest{
		Name: "alice", Email: alice, Title: "t", Content: "c",
	}); err != nil {
		t.Fatalf("submit story: %v", err)
	}

	// Bob passes module 1 and fails module 2: 1*10 = 10.
	bob := "bob@dynamicsgex.com.au"
	seedSubmission(t, db, "bob", bob, 1, 7)
	seedSubmission(t, db, "bob", bob, 2, 5)

	dash, err := svc.GetDashboard()
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}

	if dash.Stats.Champions != 2 {
		t.Fatalf("expected 2 champions, got %d", dash.Stats.Champions)
	}
	if dash.Stats.ModulesCompleted != 3 {
		t.Fatalf("expected 3 modules completed, got %d", dash.Stats.ModulesCompleted)
	}
	if dash.Stats.StoriesShared != 1 {
		t.Fatalf("expected 1 story shared, got %d", dash.Stats.StoriesShared)
	}

	if len(dash.Leaderboard) != 2 {
		t.Fatalf("expected 2 leaderboard entries, got %d", len(dash.Leaderboard))
	}
	if dash.Leaderboard[0].Name != "alice" || dash.Leaderboard[0].ImpactScore != 35 {
		t.Fatalf("unexpected leader: %+v", dash.Leaderboard[0])
	}
	if dash.Leaderboard[1].Name != "bob" || dash.Leaderboard[1].ImpactScore != 10 {
		t.Fatalf("unexpected runner-up: %+v", dash.Leaderboard[1])
	}
	if dash.Leaderboard[0].QuizzesCompleted != 2 || dash.Leaderboard[0].StoriesShared != 1 {
		t.Fatalf("unexpected leader counts: %+v", dash.Leaderboard[0])
	}
}

func TestDashboardRetakesCountOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewSubmissionRepository(db), repository.NewStoryRepository(db))

	alice := "alice@dynamicsgex.com.au"
	seedSubmission(t, db, "alice", alice, 1, 8)
	seedSubmission(t, db, "alice", alice, 1, 9)
	seedSubmission(t, db, "alice", alice, 1, 10)

	dash, err := svc.GetDashboard()
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	if dash.Stats.ModulesCompleted != 1 {
		t.Fatalf("retakes of one module must count once, got %d", dash.Stats.ModulesCompleted)
	}
	if dash.Leaderboard[0].ImpactScore != 10 {
		t.Fatalf("expected impact 10, got %d", dash.Leaderboard[0].ImpactScore)
	}
}

func TestDashboardTieBreaksByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewSubmissionRepository(db), repository.NewStoryRepository(db))

	seedSubmission(t, db, "zoe", "zoe@dynamicsgex.com.au", 1, 8)
	seedSubmission(t, db, "adam", "adam@dynamicsgex.com.au", 1, 8)

	dash, err := svc.GetDashboard()
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	if dash.Leaderboard[0].Name != "adam" {
		t.Fatalf("expected name ascending tie-break, got %q first", dash.Leaderboard[0].Name)
	}
}

func TestDashboardLeaderboardCap(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewSubmissionRepository(db), repository.NewStoryRepository(db))

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for _, n := range names {
		seedSubmission(t, db, n, n+"@dynamicsgex.com.au", 1, 8)
	}

	dash, err := svc.GetDashboard()
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	if len(dash.Leaderboard) != 10 {
		t.Fatalf("leaderboard must cap at 10, got %d", len(dash.Leaderboard))
	}
	if dash.Stats.Champions != len(names) {
		t.Fatalf("champion count must not be capped, got %d", dash.Stats.Champions)
	}
}
