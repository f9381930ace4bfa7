package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getUser returns a user's profile. Credential fields are excluded by the
// struct's JSON tags.
// GET /api/users/:id.
func (h *Handler) getUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE id = @id",
		pgx.NamedArgs{"id": id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "user not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch user")
		}
		return
	}

	c.JSON(http.StatusOK, u)
}

// updateUser partially updates a user's mutable profile fields: name, gender,
// weight, height, and labor intensity. Username, email, and password do not
// change here.
// PUT /api/users/:id. Uses COALESCE so omitted fields keep their current values.
func (h *Handler) updateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var body updateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Gender != nil && *body.Gender != "male" && *body.Gender != "female" {
		apiError(c, http.StatusBadRequest, "gender must be male or female")
		return
	}
	if body.WeightKG != nil && *body.WeightKG <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must be positive")
		return
	}
	if body.HeightCM != nil && *body.HeightCM <= 0 {
		apiError(c, http.StatusBadRequest, "height_cm must be positive")
		return
	}

	u, err := queryOne[user](h.db, c,
		`UPDATE users SET
			name            = COALESCE(@name, name),
			gender          = COALESCE(@gender, gender),
			weight_kg       = COALESCE(@weightKG, weight_kg),
			height_cm       = COALESCE(@heightCM, height_cm),
			labor_intensity = COALESCE(@laborIntensity, labor_intensity)
		 WHERE id = @id
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "name": body.Name, "gender": body.Gender,
			"weightKG": body.WeightKG, "heightCM": body.HeightCM,
			"laborIntensity": body.LaborIntensity,
		})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "user not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	c.JSON(http.StatusOK, u)
}
