package main

import (
	"math"
	"testing"
)

// makeProfile constructs a user with the fields the intake calculations read.
func makeProfile(gender string, weightKG, heightCM float64, laborIntensity string) *user {
	return &user{
		ID:             1,
		Gender:         gender,
		WeightKG:       weightKG,
		HeightCM:       heightCM,
		LaborIntensity: laborIntensity,
	}
}

/* ─── BMR accuracy tests ─────────────────────────────────────────────── */

// TestBasalMetabolicRate_Male verifies the male formula with known inputs.
// 88.362 + 13.397*70 + 4.799*175 - 5.677*25 = 1724.052
func TestBasalMetabolicRate_Male(t *testing.T) {
	got := basalMetabolicRate("male", 70, 175)
	if math.Abs(got-1724.052) >= 0.01 {
		t.Errorf("male BMR = %f, want 1724.052 (tolerance ±0.01)", got)
	}
}

// TestBasalMetabolicRate_Female verifies the female formula with known inputs.
// 447.593 + 9.247*60 + 3.098*165 - 4.330*25 = 1405.333
func TestBasalMetabolicRate_Female(t *testing.T) {
	got := basalMetabolicRate("female", 60, 165)
	if math.Abs(got-1405.333) >= 0.01 {
		t.Errorf("female BMR = %f, want 1405.333 (tolerance ±0.01)", got)
	}
}

// TestBasalMetabolicRate_NonMaleUsesFemaleFormula verifies that any gender
// string other than "male" gets the female constants.
func TestBasalMetabolicRate_NonMaleUsesFemaleFormula(t *testing.T) {
	want := basalMetabolicRate("female", 60, 165)
	if got := basalMetabolicRate("other", 60, 165); got != want {
		t.Errorf("BMR for gender=other = %f, want female value %f", got, want)
	}
}

/* ─── Labor multiplier tests ─────────────────────────────────────────── */

// TestLaborMultiplier covers the three known categories and the fallback for
// unrecognized ones.
func TestLaborMultiplier(t *testing.T) {
	cases := []struct {
		category string
		want     float64
	}{
		{"brain-domain", 1.2},
		{"labor-domain", 1.75},
		{"normal", 1.55},
		{"weird-input", 1.55},
		{"", 1.55},
	}
	for _, tc := range cases {
		if got := laborMultiplier(tc.category); got != tc.want {
			t.Errorf("laborMultiplier(%q) = %v, want %v", tc.category, got, tc.want)
		}
	}
}

// TestNormalizeLaborIntensity verifies that an omitted category is stored as
// "normal" while any non-empty value — recognized or not — passes through.
func TestNormalizeLaborIntensity(t *testing.T) {
	cases := []struct {
		category string
		want     string
	}{
		{"", "normal"},
		{"normal", "normal"},
		{"brain-domain", "brain-domain"},
		{"weird-input", "weird-input"},
	}
	for _, tc := range cases {
		if got := normalizeLaborIntensity(tc.category); got != tc.want {
			t.Errorf("normalizeLaborIntensity(%q) = %q, want %q", tc.category, got, tc.want)
		}
	}
}

// TestTargetCalories_Normal: male 70kg/175cm with normal intensity.
// BMR 1724.052 * 1.55 = 2672.2806
func TestTargetCalories_Normal(t *testing.T) {
	u := makeProfile("male", 70, 175, "normal")
	got := targetCalories(u)
	if math.Abs(got-2672.2806) >= 0.01 {
		t.Errorf("target calories = %f, want 2672.2806 (tolerance ±0.01)", got)
	}
}

// TestTargetCalories_LaborDomain: female 60kg/165cm with labor-domain intensity.
// BMR 1405.333 * 1.75 = 2459.33275
func TestTargetCalories_LaborDomain(t *testing.T) {
	u := makeProfile("female", 60, 165, "labor-domain")
	got := targetCalories(u)
	if math.Abs(got-2459.33275) >= 0.01 {
		t.Errorf("target calories = %f, want 2459.33275 (tolerance ±0.01)", got)
	}
}

/* ─── BMI tests ──────────────────────────────────────────────────────── */

// TestBodyMassIndex: 70kg at 175cm is 70/1.75² = 22.857…, 22.86 after rounding.
func TestBodyMassIndex(t *testing.T) {
	got := round2(bodyMassIndex(70, 175))
	if got != 22.86 {
		t.Errorf("BMI = %v, want 22.86", got)
	}
}

/* ─── Summation tests ────────────────────────────────────────────────── */

// TestSumCalories_Empty verifies that no entries sum to 0, not an error value.
func TestSumCalories_Empty(t *testing.T) {
	if got := sumCalories(nil); got != 0 {
		t.Errorf("sumCalories(nil) = %v, want 0", got)
	}
	if got := sumCalories([]foodLogEntry{}); got != 0 {
		t.Errorf("sumCalories(empty) = %v, want 0", got)
	}
}

// TestSumCalories_AddingEntryIncreasesSum verifies the summation property:
// appending an entry with calories=500 raises the total by exactly 500.
func TestSumCalories_AddingEntryIncreasesSum(t *testing.T) {
	entries := []foodLogEntry{
		{Calories: 320.5},
		{Calories: 612},
	}
	before := sumCalories(entries)
	entries = append(entries, foodLogEntry{Calories: 500})
	after := sumCalories(entries)
	if after-before != 500 {
		t.Errorf("sum increased by %v, want exactly 500", after-before)
	}
}

/* ─── Summary tests ──────────────────────────────────────────────────── */

// TestBuildIntakeSummary_Rounding verifies the reported precision: calories
// and BMI to 2 decimals, weight to 1, height passed through raw.
func TestBuildIntakeSummary_Rounding(t *testing.T) {
	u := makeProfile("male", 70.26, 175.5, "normal")
	entries := []foodLogEntry{{Calories: 123.456}, {Calories: 200.001}}

	s := buildIntakeSummary(u, entries, "2026-08-30")

	if s.ConsumedCalories != 323.46 {
		t.Errorf("consumed calories = %v, want 323.46", s.ConsumedCalories)
	}
	if s.WeightKG != 70.3 {
		t.Errorf("weight = %v, want 70.3", s.WeightKG)
	}
	if s.HeightCM != 175.5 {
		t.Errorf("height = %v, want raw 175.5", s.HeightCM)
	}
	if s.TargetCalories != round2(targetCalories(u)) {
		t.Errorf("target calories = %v, want %v", s.TargetCalories, round2(targetCalories(u)))
	}
	if s.BMI != round2(bodyMassIndex(u.WeightKG, u.HeightCM)) {
		t.Errorf("bmi = %v, want %v", s.BMI, round2(bodyMassIndex(u.WeightKG, u.HeightCM)))
	}
}

// TestBuildIntakeSummary_Deterministic verifies that the same profile and
// entries produce identical summaries across repeated calls.
func TestBuildIntakeSummary_Deterministic(t *testing.T) {
	u := makeProfile("female", 60, 165, "labor-domain")
	entries := []foodLogEntry{{Calories: 450}, {Calories: 800.25}}

	first := buildIntakeSummary(u, entries, "2026-08-30")
	for i := 0; i < 5; i++ {
		if again := buildIntakeSummary(u, entries, "2026-08-30"); again != first {
			t.Fatalf("summary changed across calls: %+v vs %+v", again, first)
		}
	}
}

// TestBuildIntakeSummary_EchoesProfileFields verifies gender and labor
// intensity pass through for client display.
func TestBuildIntakeSummary_EchoesProfileFields(t *testing.T) {
	u := makeProfile("female", 60, 165, "brain-domain")
	s := buildIntakeSummary(u, nil, "2026-08-30")
	if s.Gender != "female" || s.LaborIntensity != "brain-domain" {
		t.Errorf("summary echoed gender=%q labor_intensity=%q, want female/brain-domain", s.Gender, s.LaborIntensity)
	}
}
