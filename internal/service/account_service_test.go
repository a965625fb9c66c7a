package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	m := newMemStore()
	svc := NewAuthService(m.users, m.profiles, "secret", time.Hour, zap.NewNop())
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada Lovelace", " Ada@Example.com ", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "ada@example.com" || u.PasswordHash != "" || u.ID == "" {
		t.Errorf("user = %+v", u)
	}

	p, ok := m.profiles.byID[u.ID]
	if !ok || p.Goals != domain.DefaultGoalSet() || p.Username != "ada" {
		t.Errorf("default profile = %+v (found=%v)", p, ok)
	}

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate err = %v", err)
	}
	if _, err := svc.Register(ctx, "Bob", "bob@example.com", "123"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("short password err = %v", err)
	}

	token, user, err := svc.Login(ctx, "ADA@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	if err != nil || !parsed.Valid || claims.UserID != user.ID {
		t.Errorf("token claims = %+v, err %v", claims, err)
	}

	if _, _, err := svc.Login(ctx, "ada@example.com", "wrong-password"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("unknown user err = %v", err)
	}
}

func TestProfileDefaultsAndPatch(t *testing.T) {
	m := newMemStore()
	svc := NewProfileService(m.profiles)
	ctx := context.Background()

	v, err := svc.Get(ctx, "u1")
	if err != nil || !v.Defaulted || v.Goals != domain.DefaultGoalSet() {
		t.Fatalf("Get = %+v, %v", v, err)
	}

	weight, kcal := 72.5, 2100.0
	v, err = svc.Update(ctx, "u1", domain.ProfilePatch{Weight: &weight, Goals: domain.GoalSetPatch{DailyCalories: &kcal}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v.Defaulted || v.Weight != 72.5 || v.Goals.DailyCalories != 2100 || v.Goals.ProteinTarget != 150 {
		t.Errorf("updated = %+v", v)
	}

	neg := -5.0
	if _, err := svc.Update(ctx, "u1", domain.ProfilePatch{Goals: domain.GoalSetPatch{FatTarget: &neg}}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("negative target err = %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	m := newMemStore()
	svc := NewProfileService(m.profiles)
	ctx := context.Background()

	v, err := svc.ApplyPreset(ctx, "u1", "student-focus")
	if err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	g := v.Goals
	if g.WeeklyStudyHours != 20 || g.WorkHours != 6 || g.DailyCalories != 2000 || g.WorkoutFrequency != 3 {
		t.Errorf("goals = %+v", g)
	}
	// Fields the preset does not name keep their values.
	if g.ProteinTarget != domain.DefaultGoalSet().ProteinTarget {
		t.Errorf("ProteinTarget changed to %v", g.ProteinTarget)
	}

	v, _ = svc.ApplyPreset(ctx, "u1", "muscle-gain")
	if v.Goals.DailyCalories != 2500 || v.Goals.ProteinTarget != 180 || v.Goals.WeeklyStudyHours != 20 {
		t.Errorf("muscle-gain goals = %+v", v.Goals)
	}

	if _, err := svc.ApplyPreset(ctx, "u1", "bulk"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("unknown preset err = %v", err)
	}
	if n := len(svc.Presets()); n != 4 {
		t.Errorf("Presets = %d, want 4", n)
	}
}
