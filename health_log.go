package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// upsertHealthLog creates or replaces the health log entry for (user, date).
// POST /api/health-log. Body requires user_id, date, and weight_kg; optional
// fields default to empty/zero and are overwritten wholesale on a repeat post.
// The UNIQUE(user_id, date) constraint plus ON CONFLICT makes the write a
// single atomic statement — concurrent posts for the same day each land in
// full, last writer wins, and the row id never changes.
func (h *Handler) upsertHealthLog(c *gin.Context) {
	var body upsertHealthLogRequest
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
	if body.WeightKG == nil {
		apiError(c, http.StatusBadRequest, "weight_kg is required")
		return
	}
	if *body.WeightKG <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must be positive")
		return
	}
	if body.SleepHours != nil && *body.SleepHours < 0 {
		apiError(c, http.StatusBadRequest, "sleep_hours must not be negative")
		return
	}

	// Missing optional fields replace with empty/zero rather than keeping the
	// previous day's values — a post is a full snapshot for that date.
	var mood, sleepStart, sleepEnd, notes string
	var sleepHours float64
	if body.Mood != nil {
		mood = *body.Mood
	}
	if body.SleepStart != nil {
		sleepStart = *body.SleepStart
	}
	if body.SleepEnd != nil {
		sleepEnd = *body.SleepEnd
	}
	if body.Notes != nil {
		notes = *body.Notes
	}
	if body.SleepHours != nil {
		sleepHours = *body.SleepHours
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

	entry, err := queryOne[healthLogEntry](h.db, c,
		`INSERT INTO health_logs (user_id, date, weight_kg, mood, sleep_start, sleep_end, sleep_hours, notes)
		 VALUES (@userID, @date, @weightKG, @mood, @sleepStart, @sleepEnd, @sleepHours, @notes)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			weight_kg   = EXCLUDED.weight_kg,
			mood        = EXCLUDED.mood,
			sleep_start = EXCLUDED.sleep_start,
			sleep_end   = EXCLUDED.sleep_end,
			sleep_hours = EXCLUDED.sleep_hours,
			notes       = EXCLUDED.notes,
			updated_at  = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": *body.UserID, "date": body.Date, "weightKG": *body.WeightKG,
			"mood": mood, "sleepStart": sleepStart, "sleepEnd": sleepEnd,
			"sleepHours": sleepHours, "notes": notes,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save health log")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// getHealthLog reads health log entries for a user.
// GET /api/health-log?user_id=N&date=YYYY-MM-DD.
// With date: returns the bare entry, or null when the day has no record.
// Without date: returns the full history, newest date first. Both modes
// return the entry shape directly — no wrapper object.
func (h *Handler) getHealthLog(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("user_id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "user_id query param is required")
		return
	}
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
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

	if date != "" {
		entry, err := queryOne[healthLogEntry](h.db, c,
			"SELECT * FROM health_logs WHERE user_id = @userID AND date = @date",
			pgx.NamedArgs{"userID": userID, "date": date})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusOK, nil)
			} else {
				apiError(c, http.StatusInternalServerError, "failed to fetch health log")
			}
			return
		}
		c.JSON(http.StatusOK, entry)
		return
	}

	entries, err := queryMany[healthLogEntry](h.db, c,
		`SELECT * FROM health_logs
		 WHERE user_id = @userID
		 ORDER BY date DESC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch health logs")
		return
	}
	// Ensure empty array (not null) in JSON
	if entries == nil {
		entries = []healthLogEntry{}
	}

	c.JSON(http.StatusOK, entries)
}
