package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// createFoodLog inserts a new food log entry.
// POST /api/food-log. All fields are required, including fiber; numeric
// fields must be non-negative. Validation runs before any store access so a
// rejected request leaves nothing behind.
func (h *Handler) createFoodLog(c *gin.Context) {
	var body createFoodLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == nil {
		apiError(c, http.StatusBadRequest, "user_id is required")
		return
	}
	if body.Date == "" {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.Meal == "" {
		apiError(c, http.StatusBadRequest, "meal is required")
		return
	}
	if body.FoodItem == "" {
		apiError(c, http.StatusBadRequest, "food_item is required")
		return
	}
	macros := map[string]*float64{
		"calories": body.Calories,
		"protein":  body.Protein,
		"carbs":    body.Carbs,
		"fats":     body.Fats,
		"fiber":    body.Fiber,
	}
	for _, name := range []string{"calories", "protein", "carbs", "fats", "fiber"} {
		v := macros[name]
		if v == nil {
			apiError(c, http.StatusBadRequest, name+" is required")
			return
		}
		if *v < 0 {
			apiError(c, http.StatusBadRequest, name+" must not be negative")
			return
		}
	}

	exists, err := h.userExists(c, *body.UserID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to verify user")
		return
	}
	if !exists {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}

	entry, err := queryOne[foodLogEntry](h.db, c,
		`INSERT INTO food_logs (user_id, date, meal, food_item, calories, protein, carbs, fats, fiber)
		 VALUES (@userID, @date, @meal, @foodItem, @calories, @protein, @carbs, @fats, @fiber)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": *body.UserID, "date": body.Date, "meal": body.Meal,
			"foodItem": body.FoodItem, "calories": *body.Calories,
			"protein": *body.Protein, "carbs": *body.Carbs,
			"fats": *body.Fats, "fiber": *body.Fiber,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create food log")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// listFoodLogs returns a user's food log entries for one day, in insertion order.
// GET /api/food-log?user_id=N&date=YYYY-MM-DD. Exact date match only.
// Returns an empty array (not null) when the day has no entries.
func (h *Handler) listFoodLogs(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("user_id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "user_id query param is required")
		return
	}
	date := c.Query("date")
	if date == "" {
		apiError(c, http.StatusBadRequest, "date query param is required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	exists, err := h.userExists(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to verify user")
		return
	}
	if !exists {
		apiError(c, http.StatusNotFound, "user not found")
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
	// Ensure empty array (not null) in JSON
	if entries == nil {
		entries = []foodLogEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// updateFoodLog partially updates an existing food log entry.
// PUT /api/food-log/:id. Uses COALESCE so omitted fields keep their current
// values; a bad value in any field aborts the whole update.
func (h *Handler) updateFoodLog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid food log id")
		return
	}

	var body updateFoodLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date != nil {
		if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}
	for name, v := range map[string]*float64{
		"calories": body.Calories,
		"protein":  body.Protein,
		"carbs":    body.Carbs,
		"fats":     body.Fats,
		"fiber":    body.Fiber,
	} {
		if v != nil && *v < 0 {
			apiError(c, http.StatusBadRequest, name+" must not be negative")
			return
		}
	}

	entry, err := queryOne[foodLogEntry](h.db, c,
		`UPDATE food_logs SET
			date      = COALESCE(@date, date),
			meal      = COALESCE(@meal, meal),
			food_item = COALESCE(@foodItem, food_item),
			calories  = COALESCE(@calories, calories),
			protein   = COALESCE(@protein, protein),
			carbs     = COALESCE(@carbs, carbs),
			fats      = COALESCE(@fats, fats),
			fiber     = COALESCE(@fiber, fiber)
		 WHERE id = @id
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "date": body.Date, "meal": body.Meal,
			"foodItem": body.FoodItem, "calories": body.Calories,
			"protein": body.Protein, "carbs": body.Carbs,
			"fats": body.Fats, "fiber": body.Fiber,
		})
	if err != nil {
		// Distinguish a missing row from a real DB failure so callers get an
		// actionable status code rather than a misleading 404.
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "food log not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update food log")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteFoodLog removes a food log entry by ID.
// DELETE /api/food-log/:id. Returns 204 on success; deleting an id that does
// not exist is a 404, not a silent no-op.
func (h *Handler) deleteFoodLog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid food log id")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM food_logs WHERE id = @id",
		pgx.NamedArgs{"id": id})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete food log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "food log not found")
		return
	}

	c.Status(http.StatusNoContent)
}
