package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/tydev/todoapp/config"
	"github.com/tydev/todoapp/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demoUser"
	password := "password123"
	email := "demo@example.com"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, username, hash, email).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s password=%s\n", userID, username, password)

	now := time.Now()
	tasks := []struct {
		title        string
		description  string
		completed    bool
		dueDate      *time.Time
		reminderTime *time.Time
	}{
		{"Buy groceries", "Milk, eggs, bread", false, ptr(now.Add(24 * time.Hour)), ptr(now.Add(20 * time.Hour))},
		{"Write weekly report", "Summarize sprint progress", false, ptr(now.Add(48 * time.Hour)), nil},
		{"Call dentist", "", true, nil, nil},
		{"Overdue reminder demo", "Shows up in /reminders/due", false, ptr(now.Add(-2 * time.Hour)), ptr(now.Add(-time.Hour))},
	}

	for _, t := range tasks {
		var id int64
		err := db.QueryRow(`
			INSERT INTO tasks (user_id, title, description, completed, due_date, reminder_time)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, userID, t.title, t.description, t.completed, t.dueDate, t.reminderTime).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed task %q: %v", t.title, err)
		}
		fmt.Printf("seeded task: id=%d title=%q\n", id, t.title)
	}
}

func ptr(t time.Time) *time.Time { return &t }
