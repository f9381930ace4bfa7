package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. Password and AuthToken are hidden from JSON
// responses. Gender, WeightKG, HeightCM, and LaborIntensity feed the intake
// calculations.
type user struct {
	ID             int        `json:"id" db:"id"`
	Username       string     `json:"username" db:"username"`
	Email          string     `json:"email" db:"email"`
	Password       string     `json:"-" db:"password"`
	AuthToken      string     `json:"-" db:"auth_token"`
	Name           string     `json:"name" db:"name"`
	Gender         string     `json:"gender" db:"gender"`
	WeightKG       float64    `json:"weight_kg" db:"weight_kg"`
	HeightCM       float64    `json:"height_cm" db:"height_cm"`
	LaborIntensity string     `json:"labor_intensity" db:"labor_intensity"`
	CreatedAt      *time.Time `json:"created_at" db:"created_at"`
}

// foodLogEntry maps to food_logs. One row per meal entry; rows are
// independent (no cross-entry invariants) and queried by exact (user_id, date).
type foodLogEntry struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	Meal      string     `json:"meal" db:"meal"`
	FoodItem  string     `json:"food_item" db:"food_item"`
	Calories  float64    `json:"calories" db:"calories"`
	Protein   float64    `json:"protein" db:"protein"`
	Carbs     float64    `json:"carbs" db:"carbs"`
	Fats      float64    `json:"fats" db:"fats"`
	Fiber     float64    `json:"fiber" db:"fiber"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// healthLogEntry maps to health_logs. The schema enforces
// UNIQUE(user_id, date) — at most one entry per user per day; all writes go
// through a single atomic upsert that preserves the row id.
type healthLogEntry struct {
	ID         int        `json:"id" db:"id"`
	UserID     int        `json:"user_id" db:"user_id"`
	Date       DateOnly   `json:"date" db:"date"`
	WeightKG   float64    `json:"weight_kg" db:"weight_kg"`
	Mood       string     `json:"mood" db:"mood"`
	SleepStart string     `json:"sleep_start" db:"sleep_start"`
	SleepEnd   string     `json:"sleep_end" db:"sleep_end"`
	SleepHours float64    `json:"sleep_hours" db:"sleep_hours"`
	Notes      string     `json:"notes" db:"notes"`
	CreatedAt  *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at" db:"updated_at"`
}

// intakeSummary is the response shape for GET /api/users/:id/intake.
// Derived figures come pre-rounded: calories and BMI to 2 decimals, weight to 1.
type intakeSummary struct {
	Date             string  `json:"date"`
	TargetCalories   float64 `json:"target_calories"`
	ConsumedCalories float64 `json:"consumed_calories"`
	BMI              float64 `json:"bmi"`
	WeightKG         float64 `json:"weight_kg"`
	HeightCM         float64 `json:"height_cm"`
	Gender           string  `json:"gender"`
	LaborIntensity   string  `json:"labor_intensity"`
}

/* ─── Request bodies ─────────────────────────────────────────────────── */

// registerRequest is the request body for POST /api/register.
type registerRequest struct {
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Name           string   `json:"name"`
	Gender         string   `json:"gender"`
	WeightKG       *float64 `json:"weight_kg"`
	HeightCM       *float64 `json:"height_cm"`
	LaborIntensity string   `json:"labor_intensity"`
}

// updateUserRequest is the request body for PUT /api/users/:id.
// All fields are pointers — only non-nil fields get written to the database,
// so an omitted field is distinguishable from an explicit zero.
type updateUserRequest struct {
	Name           *string  `json:"name"`
	Gender         *string  `json:"gender"`
	WeightKG       *float64 `json:"weight_kg"`
	HeightCM       *float64 `json:"height_cm"`
	LaborIntensity *string  `json:"labor_intensity"`
}

// createFoodLogRequest is the request body for POST /api/food-log.
// Numeric fields are pointers so a missing field is rejected rather than
// silently treated as zero.
type createFoodLogRequest struct {
	UserID   *int     `json:"user_id"`
	Date     string   `json:"date"`
	Meal     string   `json:"meal"`
	FoodItem string   `json:"food_item"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
	Fiber    *float64 `json:"fiber"`
}

// updateFoodLogRequest is the request body for PUT /api/food-log/:id.
// Omitted fields keep their current values (COALESCE in the UPDATE).
type updateFoodLogRequest struct {
	Date     *string  `json:"date"`
	Meal     *string  `json:"meal"`
	FoodItem *string  `json:"food_item"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
	Fiber    *float64 `json:"fiber"`
}

// upsertHealthLogRequest is the request body for POST /api/health-log.
// user_id, date, and weight_kg are required; the rest default to empty/zero.
// A repeat post for the same (user_id, date) replaces the whole entry.
type upsertHealthLogRequest struct {
	UserID     *int     `json:"user_id"`
	Date       string   `json:"date"`
	WeightKG   *float64 `json:"weight_kg"`
	Mood       *string  `json:"mood"`
	SleepStart *string  `json:"sleep_start"`
	SleepEnd   *string  `json:"sleep_end"`
	SleepHours *float64 `json:"sleep_hours"`
	Notes      *string  `json:"notes"`
}
