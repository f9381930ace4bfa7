package main

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// laborMultipliers maps labor-intensity categories to the factor applied to
// BMR when deriving target calories. This is the single source of truth for
// known categories; anything else falls back to defaultLaborMultiplier
// instead of erroring (existing business rule, kept as-is).
var laborMultipliers = map[string]float64{
	"brain-domain": 1.2,
	"labor-domain": 1.75,
	"normal":       1.55,
}

const defaultLaborMultiplier = 1.55

// assumedAgeYears is the fixed age used in the BMR formulas. The profile does
// not store a birth date, so every user is treated as 25.
const assumedAgeYears = 25

// basalMetabolicRate computes BMR (revised Harris-Benedict) from gender,
// weight in kg, and height in cm. Any gender other than "male" uses the
// female constants. Pure — no error path for valid numeric inputs.
func basalMetabolicRate(gender string, weightKG, heightCM float64) float64 {
	if gender == "male" {
		return 88.362 + 13.397*weightKG + 4.799*heightCM - 5.677*assumedAgeYears
	}
	return 447.593 + 9.247*weightKG + 3.098*heightCM - 4.330*assumedAgeYears
}

// laborMultiplier returns the activity factor for a labor-intensity category.
// Unrecognized categories get the normal multiplier.
func laborMultiplier(category string) float64 {
	if m, ok := laborMultipliers[category]; ok {
		return m
	}
	return defaultLaborMultiplier
}

// normalizeLaborIntensity maps an omitted category to "normal" so stored rows
// agree with the schema default. Unrecognized non-empty values are stored as
// given and resolve to the normal multiplier at calculation time.
func normalizeLaborIntensity(category string) string {
	if category == "" {
		return "normal"
	}
	return category
}

// targetCalories is BMR scaled by the labor-intensity multiplier.
func targetCalories(u *user) float64 {
	return basalMetabolicRate(u.Gender, u.WeightKG, u.HeightCM) * laborMultiplier(u.LaborIntensity)
}

// bodyMassIndex computes weight(kg) / height(m)².
func bodyMassIndex(weightKG, heightCM float64) float64 {
	heightM := heightCM / 100
	return weightKG / (heightM * heightM)
}

// sumCalories totals the calories field across entries. An empty slice sums
// to 0 — no entries on a date is a zero, not an error.
func sumCalories(entries []foodLogEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Calories
	}
	return total
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

// buildIntakeSummary merges a profile and one day's food log entries into the
// intake response. Deterministic: same profile and entries always produce the
// same summary.
func buildIntakeSummary(u *user, entries []foodLogEntry, date string) intakeSummary {
	return intakeSummary{
		Date:             date,
		TargetCalories:   round2(targetCalories(u)),
		ConsumedCalories: round2(sumCalories(entries)),
		BMI:              round2(bodyMassIndex(u.WeightKG, u.HeightCM)),
		WeightKG:         round1(u.WeightKG),
		HeightCM:         u.HeightCM,
		Gender:           u.Gender,
		LaborIntensity:   u.LaborIntensity,
	}
}

// getUserIntake returns target calories, consumed calories, and BMI for one day.
// GET /api/users/:id/intake?date=YYYY-MM-DD (date defaults to today).
// Recomputed on every call — nothing here is cached.
func (h *Handler) getUserIntake(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "user not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch user")
		}
		return
	}

	entries, err := queryMany[foodLogEntry](h.db, c,
		`SELECT * FROM food_logs
		 WHERE user_id = @userID AND date = @date
		 ORDER BY id`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food logs")
		return
	}

	c.JSON(http.StatusOK, buildIntakeSummary(&u, entries, date))
}
