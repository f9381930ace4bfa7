package main

import (
	"errors"
	"net/http"
	"regexp"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// validPassword requires at least 8 alphanumeric characters with at least one
// letter and one digit. Written as a loop — RE2 has no lookahead.
func validPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

// dummyHash is a pre-computed bcrypt hash used when a login username isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based username enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// register creates a new user after format and uniqueness checks.
// POST /api/register. The password is stored as a bcrypt hash and an opaque
// auth token is generated at creation. labor_intensity is not validated
// against the known categories — unrecognized values fall back to the normal
// multiplier at calculation time.
func (h *Handler) register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !usernameRe.MatchString(body.Username) {
		apiError(c, http.StatusBadRequest, "username must contain only letters, digits, and underscores")
		return
	}
	if !validPassword(body.Password) {
		apiError(c, http.StatusBadRequest, "password must be at least 8 characters and mix letters and digits")
		return
	}
	if !emailRe.MatchString(body.Email) {
		apiError(c, http.StatusBadRequest, "invalid email address")
		return
	}
	if body.Gender != "male" && body.Gender != "female" {
		apiError(c, http.StatusBadRequest, "gender must be male or female")
		return
	}
	if body.WeightKG == nil || *body.WeightKG <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must be a positive number")
		return
	}
	if body.HeightCM == nil || *body.HeightCM <= 0 {
		apiError(c, http.StatusBadRequest, "height_cm must be a positive number")
		return
	}

	var existingID int
	err := h.db.QueryRow(c, "SELECT id FROM users WHERE username = $1", body.Username).Scan(&existingID)
	if err == nil {
		apiError(c, http.StatusBadRequest, "username already taken")
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusInternalServerError, "registration failed, please retry")
		return
	}
	err = h.db.QueryRow(c, "SELECT id FROM users WHERE email = $1", body.Email).Scan(&existingID)
	if err == nil {
		apiError(c, http.StatusBadRequest, "email already registered")
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusInternalServerError, "registration failed, please retry")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "registration failed, please retry")
		return
	}
	authToken := uuid.New().String()

	u, err := queryOne[user](h.db, c,
		`INSERT INTO users (username, email, password, auth_token, name, gender, weight_kg, height_cm, labor_intensity)
		 VALUES (@username, @email, @password, @authToken, @name, @gender, @weightKG, @heightCM, @laborIntensity)
		 RETURNING *`,
		pgx.NamedArgs{
			"username": body.Username, "email": body.Email,
			"password": string(hash), "authToken": authToken,
			"name": body.Name, "gender": body.Gender,
			"weightKG": *body.WeightKG, "heightCM": *body.HeightCM,
			"laborIntensity": normalizeLaborIntensity(body.LaborIntensity),
		})
	if err != nil {
		// Unique constraint races land here; the generic message keeps
		// store detail out of the response.
		apiError(c, http.StatusInternalServerError, "registration failed, please retry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": u.ID, "token": u.AuthToken})
}

// login verifies username/password and returns the user's id and auth token.
// POST /api/login.
func (h *Handler) login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, lookupErr := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE username = @username",
		pgx.NamedArgs{"username": body.Username})

	// Always run bcrypt to keep response time constant regardless of whether the
	// username was found — prevents timing-based username enumeration.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": u.ID, "token": u.AuthToken})
}
