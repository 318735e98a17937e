package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type memWorkouts struct {
	rows   map[int64]domain.Workout
	nextID int64
}

func newMemWorkouts() *memWorkouts {
	return &memWorkouts{rows: map[int64]domain.Workout{}}
}

func (m *memWorkouts) Create(_ context.Context, w *domain.Workout) (int64, error) {
	m.nextID++
	w.ID = m.nextID
	m.rows[w.ID] = *w
	return w.ID, nil
}

func (m *memWorkouts) GetByID(_ context.Context, userID, id int64) (*domain.Workout, error) {
	w, ok := m.rows[id]
	if !ok || w.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (m *memWorkouts) List(_ context.Context, userID int64, _ domain.WorkoutFilter) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range m.rows {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memWorkouts) Update(_ context.Context, w *domain.Workout) error {
	cur, ok := m.rows[w.ID]
	if !ok || cur.UserID != w.UserID {
		return domain.ErrNotFound
	}
	m.rows[w.ID] = *w
	return nil
}

func (m *memWorkouts) Delete(_ context.Context, userID, id int64) error {
	w, ok := m.rows[id]
	if !ok || w.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memWorkouts) Stats(_ context.Context, userID int64) (*domain.WorkoutStats, error) {
	return &domain.WorkoutStats{}, nil
}

type memTimers struct {
	rows    map[int64]domain.WorkoutTimer
	updates int
}

func (m *memTimers) Create(_ context.Context, t *domain.WorkoutTimer) (int64, error) {
	t.ID = int64(len(m.rows) + 1)
	m.rows[t.ID] = *t
	return t.ID, nil
}

func (m *memTimers) GetByID(_ context.Context, userID, id int64) (*domain.WorkoutTimer, error) {
	t, ok := m.rows[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTimers) List(_ context.Context, userID int64) ([]domain.WorkoutTimer, error) {
	return nil, nil
}

func (m *memTimers) Update(_ context.Context, t *domain.WorkoutTimer) error {
	m.updates++
	t.Recompute()
	m.rows[t.ID] = *t
	return nil
}

func (m *memTimers) Delete(_ context.Context, userID, id int64) error {
	delete(m.rows, id)
	return nil
}

type memShopping struct {
	rows map[int64]domain.ShoppingList
}

func (m *memShopping) Create(_ context.Context, l *domain.ShoppingList) (int64, error) {
	l.ID = int64(len(m.rows) + 1)
	l.Recompute()
	m.rows[l.ID] = *l
	return l.ID, nil
}

func (m *memShopping) GetByID(_ context.Context, userID, id int64) (*domain.ShoppingList, error) {
	l, ok := m.rows[id]
	if !ok || l.UserID != userID {
		return nil, domain.ErrNotFound
	}
	l.Items = append([]domain.ShoppingItem(nil), l.Items...)
	return &l, nil
}

func (m *memShopping) List(_ context.Context, userID int64) ([]domain.ShoppingList, error) {
	return nil, nil
}

func (m *memShopping) Update(_ context.Context, l *domain.ShoppingList) error {
	l.Recompute()
	m.rows[l.ID] = *l
	return nil
}

func (m *memShopping) Delete(_ context.Context, userID, id int64) error {
	delete(m.rows, id)
	return nil
}

type memSettings struct {
	rows map[int64]domain.Settings
}

func (m *memSettings) Get(_ context.Context, userID int64) (*domain.Settings, error) {
	s, ok := m.rows[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSettings) Upsert(_ context.Context, s *domain.Settings) error {
	m.rows[s.UserID] = *s
	return nil
}

func (m *memSettings) Delete(_ context.Context, userID int64) error {
	delete(m.rows, userID)
	return nil
}

// stubAuth answers Login with a fixed error so the HTTP mapping can be
// compared across failure causes.
type stubAuth struct {
	AuthService
	loginErr   error
	forgotCall chan string
	forgotGate chan struct{}
}

func (s *stubAuth) Login(_ context.Context, _ domain.LoginRequest) (*domain.AuthResult, error) {
	return nil, s.loginErr
}

func (s *stubAuth) ForgotPassword(_ context.Context, email string) error {
	if s.forgotGate != nil {
		<-s.forgotGate
	}
	s.forgotCall <- email
	return nil
}

type unavailableAI struct{}

func (unavailableAI) err() error {
	return domain.NewAppError(http.StatusServiceUnavailable, domain.CodeAIUnavailable, "AI assistant is not configured")
}

func (a unavailableAI) Chat(context.Context, domain.AIChatRequest) (*domain.AIResponse, error) {
	return nil, a.err()
}

func (a unavailableAI) WorkoutPlan(context.Context, domain.WorkoutPlanRequest) (*domain.AIResponse, error) {
	return nil, a.err()
}

func (a unavailableAI) Nutrition(context.Context, domain.NutritionRequest) (*domain.AIResponse, error) {
	return nil, a.err()
}

func (a unavailableAI) Motivation(context.Context) (*domain.AIResponse, error) {
	return nil, a.err()
}

type memGoals struct {
	rows map[int64]domain.Goal
}

func (m *memGoals) Create(_ context.Context, g *domain.Goal) (int64, error) {
	g.ID = int64(len(m.rows) + 1)
	g.Recompute(fixedNow)
	m.rows[g.ID] = *g
	return g.ID, nil
}

func (m *memGoals) GetByID(_ context.Context, userID, id int64) (*domain.Goal, error) {
	g, ok := m.rows[id]
	if !ok || g.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (m *memGoals) List(_ context.Context, userID int64, status string) ([]domain.Goal, error) {
	return nil, nil
}

func (m *memGoals) Update(_ context.Context, g *domain.Goal) error {
	g.Recompute(fixedNow)
	m.rows[g.ID] = *g
	return nil
}

func (m *memGoals) Delete(_ context.Context, userID, id int64) error {
	delete(m.rows, id)
	return nil
}

type memReminders struct {
	created []domain.Reminder
}

func (m *memReminders) Create(_ context.Context, rem *domain.Reminder) (int64, error) {
	rem.ID = int64(len(m.created) + 1)
	rem.Recompute(fixedNow)
	m.created = append(m.created, *rem)
	return rem.ID, nil
}

func (m *memReminders) GetByID(_ context.Context, userID, id int64) (*domain.Reminder, error) {
	if id < 1 || int(id) > len(m.created) || m.created[id-1].UserID != userID {
		return nil, domain.ErrNotFound
	}
	rem := m.created[id-1]
	return &rem, nil
}

func (m *memReminders) List(context.Context, int64) ([]domain.Reminder, error) { return nil, nil }
func (m *memReminders) Update(context.Context, *domain.Reminder) error      { return nil }
func (m *memReminders) Delete(context.Context, int64, int64) error          { return nil }

func (m *memReminders) Toggle(context.Context, int64, int64) (*domain.Reminder, error) {
	return nil, domain.ErrNotFound
}
