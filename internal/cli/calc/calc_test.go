package calc

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/storage/jsonfile"
)

func setupTestStore(t *testing.T) *cli.Context {
	t.Helper()
	store := jsonfile.NewStore(filepath.Join(t.TempDir(), "vitalit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := cli.NewContext(store, catalog.MustDefault(), time.UTC, nil)
	ctx.OnUnlock = nil
	return ctx
}

func withProfile(t *testing.T, ctx *cli.Context) {
	t.Helper()
	age, height, weight := 30, 165.0, 70.0
	sex, activity := models.SexFemale, models.ActivityLight
	ok := ctx.Dispatch(state.UpdateProfile{Update: models.ProfileUpdate{
		Age: &age, Height: &height, Weight: &weight, Sex: &sex, ActivityLevel: &activity,
	}})
	if !ok {
		t.Fatal("profile update rejected")
	}
}

func TestParseEnums(t *testing.T) {
	p := models.DefaultProfile()

	e, err := parseEnums(p, "", "", "")
	if err != nil || e.sex != p.Sex || e.activity != p.ActivityLevel || e.goal != p.Goal {
		t.Errorf("parseEnums() with no flags = %+v, %v", e, err)
	}
	e, err = parseEnums(p, "male", "active", "lose")
	if err != nil || e.sex != models.SexMale || e.activity != models.ActivityActive || e.goal != models.GoalLose {
		t.Errorf("parseEnums() = %+v, %v", e, err)
	}
	if _, err := parseEnums(p, "", "lazy", ""); err == nil {
		t.Error("parseEnums() accepted an unknown activity level")
	}
}

func TestBMICmd(t *testing.T) {
	ctx := setupTestStore(t)
	if err := (&BMICmd{}).Run(ctx); err == nil {
		t.Error("bmi without weight or height should fail")
	}
	if err := (&BMICmd{Weight: 70, Height: 175}).Run(ctx); err != nil {
		t.Errorf("bmi failed: %v", err)
	}
}

func TestCaloriesCmd_SavesCache(t *testing.T) {
	ctx := setupTestStore(t)
	withProfile(t, ctx)

	if err := (&CaloriesCmd{Goal: "lose"}).Run(ctx); err != nil {
		t.Fatalf("calories failed: %v", err)
	}
	d, ok := ctx.Repo.LoadDailyCalories()
	if !ok {
		t.Fatal("calorie cache not saved")
	}
	if d.Weight != 70 || d.Goal != models.GoalLose || d.RecommendedCalories <= 0 || d.LastUpdated != ctx.Today() {
		t.Errorf("calorie cache = %+v", d)
	}
}

func TestWaterCmd_KeepsLoggedAmount(t *testing.T) {
	ctx := setupTestStore(t)
	withProfile(t, ctx)

	if err := (&WaterCmd{}).Run(ctx); err != nil {
		t.Fatalf("water failed: %v", err)
	}
	ctx.LogWater(0.5)
	if err := (&WaterCmd{Activity: "active"}).Run(ctx); err != nil {
		t.Fatalf("water failed: %v", err)
	}
	d, _ := ctx.Repo.LoadWaterIntake()
	if d.LoggedMLToday != 500 || d.Activity != models.ActivityActive || d.RecommendedML <= 0 {
		t.Errorf("water cache = %+v", d)
	}
}

func TestBodyCmd(t *testing.T) {
	ctx := setupTestStore(t)
	withProfile(t, ctx)

	if err := (&BodyCmd{Waist: 80, Hip: 100, Neck: 34}).Run(ctx); err != nil {
		t.Fatalf("body failed: %v", err)
	}
	d, ok := ctx.Repo.LoadBodyComposition()
	if !ok || d.WaistToHipRatio != 0.8 || d.BodyFatPercentage <= 0 {
		t.Errorf("body cache = %+v, %v", d, ok)
	}
	if err := (&BodyCmd{Waist: 0, Hip: 100}).Run(ctx); err == nil {
		t.Error("body accepted a zero waist")
	}
}
