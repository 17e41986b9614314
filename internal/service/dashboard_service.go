package service

import (
	"ai_hub_backend/internal/quizbank"
	"ai_hub_backend/internal/repository"
	"ai_hub_backend/internal/util"
	"sort"
)

// Points per passed module and per shared story in the leaderboard formula.
// Fixed so rankings stay reproducible across releases.
const (
	pointsPerModule = 10
	pointsPerStory  = 15
)

const leaderboardSize = 10

type DashboardService struct {
	Subs    *repository.SubmissionRepository
	Stories *repository.StoryRepository
}

func NewDashboardService(subs *repository.SubmissionRepository, stories *repository.StoryRepository) *DashboardService {
	return &DashboardService{Subs: subs, Stories: stories}
}

type DashboardStats struct {
	Champions        int   `json:"champions"`
	ModulesCompleted int   `json:"modulesCompleted"`
	StoriesShared    int64 `json:"storiesShared"`
	TotalLikes       int64 `json:"totalLikes"`
}

type ChampionEntry struct {
	Name             string `json:"name"`
	Department       string `json:"department"`
	QuizzesCompleted int    `json:"quizzesCompleted"`
	StoriesShared    int    `json:"storiesShared"`
	ImpactScore      int    `json:"impactScore"`
}

type Dashboard struct {
	Stats       DashboardStats  `json:"stats"`
	Leaderboard []ChampionEntry `json:"leaderboard"`
}

type championAgg struct {
	name          string
	department    string
	passedModules map[int]bool
	stories       int
}

// GetDashboard scans the submission and story stores and aggregates champion
// counts plus the ranked leaderboard. A champion is anyone with at least one
// passing submission or one shared story.
func (s *DashboardService) GetDashboard() (*Dashboard, error) {
	subs, err := s.Subs.ListAll()
	if err != nil {
		return nil, err
	}
	stories, err := s.Stories.List()
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.Stories.TotalLikes()
	if err != nil {
		return nil, err
	}

	champions := make(map[string]*championAgg)
	get := func(key, name, department string) *championAgg {
		agg, ok := champions[key]
		if !ok {
			agg = &championAgg{passedModules: make(map[int]bool)}
			champions[key] = agg
		}
		if agg.name == "" {
			agg.name = name
		}
		if agg.department == "" {
			agg.department = department
		}
		return agg
	}

	for i := range subs {
		sub := &subs[i]
		if sub.Percent()/100 < quizbank.PassThreshold {
			continue
		}
		key := util.IdentityKey(sub.Name, sub.Email)
		agg := get(key, sub.Name, sub.Department)
		agg.passedModules[sub.ModuleID] = true
	}

	for i := range stories {
		story := &stories[i]
		key := util.IdentityKey(story.Name, story.Email)
		agg := get(key, story.Name, story.Department)
		agg.stories++
	}

	stats := DashboardStats{
		Champions:     len(champions),
		StoriesShared: int64(len(stories)),
		TotalLikes:    totalLikes,
	}

	leaderboard := make([]ChampionEntry, 0, len(champions))
	for _, agg := range champions {
		stats.ModulesCompleted += len(agg.passedModules)
		leaderboard = append(leaderboard, ChampionEntry{
			Name:             agg.name,
			Department:       agg.department,
			QuizzesCompleted: len(agg.passedModules),
			StoriesShared:    agg.stories,
			ImpactScore:      len(agg.passedModules)*pointsPerModule + agg.stories*pointsPerStory,
		})
	}

	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].ImpactScore != leaderboard[j].ImpactScore {
			return leaderboard[i].ImpactScore > leaderboard[j].ImpactScore
		}
		return leaderboard[i].Name < leaderboard[j].Name
	})
	if len(leaderboard) > leaderboardSize {
		leaderboard = leaderboard[:leaderboardSize]
	}

	return &Dashboard{Stats: stats, Leaderboard: leaderboard}, nil
}
