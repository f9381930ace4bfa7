// CLI tool to create a user with a bcrypt-hashed password, an auth token, and
// the body-profile fields the intake calculations need.
// Usage: go run ./cmd/create-user (from the repo root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)

	prompt := func(label string) string {
		fmt.Print(label + ": ")
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	promptFloat := func(label string) float64 {
		v, err := strconv.ParseFloat(prompt(label), 64)
		if err != nil || v <= 0 {
			fmt.Fprintf(os.Stderr, "%s must be a positive number\n", label)
			os.Exit(1)
		}
		return v
	}

	username := prompt("Username")
	email := prompt("Email")
	password := prompt("Password")
	name := prompt("Display name")
	gender := prompt("Gender (male/female)")
	weightKG := promptFloat("Weight (kg)")
	heightCM := promptFloat("Height (cm)")
	labor := prompt("Labor intensity (brain-domain/labor-domain/normal)")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	authToken := uuid.New().String()

	var userID int
	err = conn.QueryRow(context.Background(),
		`INSERT INTO users (username, email, password, auth_token, name, gender, weight_kg, height_cm, labor_intensity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		username, email, string(hash), authToken, name, gender, weightKG, heightCM, labor,
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", userID)
	fmt.Printf("  Username:   %s\n", username)
	fmt.Printf("  Auth Token: %s\n", authToken)
}
