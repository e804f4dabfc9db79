// Package apitest runs an in-memory health-data API for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/kidandcat/diametrics/internal/model"
)

// Server is a fake API with a single account. Every method is safe for
// concurrent use.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	Username   string
	Password   string
	Token      string
	nextID     int64
	glucose    []model.GlucoseReading
	nutrition  []model.NutritionEntry
	activity   []model.ActivityEntry
	weight     []model.WeightEntry
	risk       *model.RiskAssessment
	goals      *model.Goals
	streak     model.Streak
	milestones []model.Milestone
	analysis   model.GoalAnalysis

	// Fail makes every request whose path has this prefix answer 500.
	Fail string
	// failKey fails requests whose "METHOD /path" has this prefix once
	// failAfter of them have succeeded.
	failKey   string
	failAfter int
	// Calls counts requests per "METHOD /path".
	Calls map[string]int
}

func New() *Server {
	s := &Server{
		Username: "alice",
		Password: "secret1",
		Token:    "tok-alice",
		Calls:    map[string]int{},
		analysis: model.GoalAnalysis{
			OverallStatus: "on_track",
			Summary:       "You are **doing well**.",
			Insights:      []model.GoalInsight{{Category: "glucose", Status: "on_track", Message: "Average 112 mg/dL"}},
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) SetFail(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fail = prefix
}

// SetFailAfter lets n requests matching key, a "METHOD /path" prefix,
// succeed and fails every later one.
func (s *Server) SetFailAfter(key string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failKey = key
	s.failAfter = n
}

func (s *Server) SetMilestones(m []model.Milestone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.milestones = m
}

func (s *Server) SetStreak(st model.Streak) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streak = st
}

// RevokeToken makes the API reject the current token from now on.
func (s *Server) RevokeToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = "revoked-" + s.Token
}

func (s *Server) CallCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[key]
}

func (s *Server) Glucose() []model.GlucoseReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.GlucoseReading(nil), s.glucose...)
}

func (s *Server) Nutrition() []model.NutritionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.NutritionEntry(nil), s.nutrition...)
}

func (s *Server) Activity() []model.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ActivityEntry(nil), s.activity...)
}

func (s *Server) Weight() []model.WeightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.WeightEntry(nil), s.weight...)
}

func (s *Server) Goals() *model.Goals {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.goals == nil {
		return nil
	}
	g := *s.goals
	return &g
}

func (s *Server) Risk() *model.RiskAssessment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.risk
}

func (s *Server) SeedGlucose(rs ...model.GlucoseReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rs {
		s.nextID++
		r.ID = s.nextID
		s.glucose = append(s.glucose, r)
	}
}

func (s *Server) SeedActivity(es ...model.ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range es {
		s.nextID++
		e.ID = s.nextID
		s.activity = append(s.activity, e)
	}
}

func (s *Server) SeedNutrition(es ...model.NutritionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range es {
		s.nextID++
		e.ID = s.nextID
		s.nutrition = append(s.nutrition, e)
	}
}

func (s *Server) SeedWeight(es ...model.WeightEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range es {
		s.nextID++
		e.ID = s.nextID
		s.weight = append(s.weight, e)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls[r.Method+" "+r.URL.Path]++

	if s.Fail != "" && strings.HasPrefix(r.URL.Path, s.Fail) {
		writeError(w, http.StatusInternalServerError, "simulated failure")
		return
	}
	if s.failKey != "" && strings.HasPrefix(r.Method+" "+r.URL.Path, s.failKey) {
		if s.failAfter == 0 {
			writeError(w, http.StatusInternalServerError, "simulated failure")
			return
		}
		s.failAfter--
	}

	switch r.URL.Path {
	case "/auth/signup":
		var in struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&in)
		if len(in.Password) < 6 {
			writeError(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}
		if in.Username == s.Username {
			writeError(w, http.StatusConflict, "Username already exists")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
		return
	case "/auth/login":
		var in struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&in)
		if in.Username != s.Username || in.Password != s.Password {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": s.Token, "username": s.Username, "expires_at": "2099-01-01T00:00:00"})
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+s.Token {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	switch r.URL.Path {
	case "/auth/logout":
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	case "/data/glucose":
		s.glucose = collection(w, r, s, s.glucose, func(e *model.GlucoseReading) *int64 { return &e.ID }, func(e model.GlucoseReading) model.Day { return e.Date })
	case "/data/nutrition":
		s.nutrition = collection(w, r, s, s.nutrition, func(e *model.NutritionEntry) *int64 { return &e.ID }, func(e model.NutritionEntry) model.Day { return e.Date })
	case "/data/activity":
		s.activity = collection(w, r, s, s.activity, func(e *model.ActivityEntry) *int64 { return &e.ID }, func(e model.ActivityEntry) model.Day { return e.Date })
	case "/data/weight":
		s.weight = collection(w, r, s, s.weight, func(e *model.WeightEntry) *int64 { return &e.ID }, func(e model.WeightEntry) model.Day { return e.Date })
	case "/data/risk":
		if r.Method == http.MethodPost {
			var in model.RiskAssessment
			json.NewDecoder(r.Body).Decode(&in)
			in.CreatedAt = "2024-01-01 00:00:00"
			s.risk = &in
			writeJSON(w, http.StatusCreated, map[string]string{"message": "Risk assessment saved"})
			return
		}
		writeJSON(w, http.StatusOK, s.risk)
	case "/data/goals":
		if r.Method == http.MethodPost {
			var in model.Goals
			json.NewDecoder(r.Body).Decode(&in)
			s.goals = &in
			writeJSON(w, http.StatusOK, map[string]string{"message": "Goals saved"})
			return
		}
		writeJSON(w, http.StatusOK, s.goals)
	case "/data/streaks":
		writeJSON(w, http.StatusOK, s.streak)
	case "/data/milestones":
		ms := s.milestones
		if ms == nil {
			ms = []model.Milestone{}
		}
		writeJSON(w, http.StatusOK, ms)
	case "/analyze-goals":
		writeJSON(w, http.StatusOK, s.analysis)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func collection[T any](w http.ResponseWriter, r *http.Request, s *Server, items []T, id func(*T) *int64, day func(T) model.Day) []T {
	switch r.Method {
	case http.MethodGet:
		out := append([]T{}, items...)
		sort.SliceStable(out, func(i, j int) bool { return day(out[i]) < day(out[j]) })
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var in T
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return items
		}
		s.nextID++
		*id(&in) = s.nextID
		items = append(items, in)
		writeJSON(w, http.StatusCreated, map[string]string{"message": "created"})
	case http.MethodDelete:
		var in struct {
			ID int64 `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		kept := items[:0:0]
		for i := range items {
			if *id(&items[i]) != in.ID {
				kept = append(kept, items[i])
			}
		}
		items = kept
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
	return items
}
