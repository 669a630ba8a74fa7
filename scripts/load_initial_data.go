package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"message-scheduler-backend/internal/config"
	"message-scheduler-backend/internal/database"
	"message-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type UserData struct {
	Name      string `yaml:"name"`
	FullName  string `yaml:"full_name,omitempty"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone,omitempty"`
	Role      string `yaml:"role,omitempty"`
	AvatarURL string `yaml:"avatar_url,omitempty"`
	Status    string `yaml:"status,omitempty"`
}

type ProjectData struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Status      string   `yaml:"status"`
	OwnerEmail  string   `yaml:"owner_email"`
	DueInDays   *int     `yaml:"due_in_days,omitempty"`
	TeamEmails  []string `yaml:"team,omitempty"`
}

// DataFile is one YAML file under the data directory
type DataFile struct {
	Users    []UserData    `yaml:"users"`
	Projects []ProjectData `yaml:"projects"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	files, err := loadDataFiles(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load data files: %w", err)
	}

	var users []UserData
	var projects []ProjectData
	for _, f := range files {
		users = append(users, f.Users...)
		projects = append(projects, f.Projects...)
	}

	// Users first: projects refer to them by email
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range users {
		user, created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		userMap[strings.ToLower(userData.Email)] = user
		if created {
			userCreated++
		}
	}
	log.Printf("📋 Users: %d created, %d total", userCreated, len(users))

	projectCreated, joinsCreated := 0, 0
	for _, projectData := range projects {
		project, created, err := createProject(db, projectData, userMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create project %s: %v", projectData.Title, err)
			continue
		}
		if created {
			projectCreated++
		}
		joinsCreated += createProjectTeam(db, project, projectData.TeamEmails, userMap)
	}
	log.Printf("📋 Projects: %d created, %d total", projectCreated, len(projects))
	log.Printf("📋 Project team members: %d created", joinsCreated)

	return nil
}

func loadDataFiles(dataDir string) ([]DataFile, error) {
	var files []DataFile

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !(strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var file DataFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		files = append(files, file)
		return nil
	})

	return files, err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func createUser(db *gorm.DB, userData UserData) (*models.User, bool, error) {
	if userData.Email == "" {
		return nil, false, fmt.Errorf("email is required")
	}

	var user models.User
	err := db.Where("LOWER(email) = ?", strings.ToLower(userData.Email)).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query user: %w", err)
	}

	user = models.User{
		Name:      optional(userData.Name),
		FullName:  optional(userData.FullName),
		Email:     optional(userData.Email),
		Phone:     optional(userData.Phone),
		Role:      optional(userData.Role),
		AvatarURL: optional(userData.AvatarURL),
		Status:    optional(userData.Status),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, true, nil
}

func createProject(db *gorm.DB, projectData ProjectData, userMap map[string]*models.User) (*models.Project, bool, error) {
	owner := userMap[strings.ToLower(projectData.OwnerEmail)]
	if owner == nil {
		return nil, false, fmt.Errorf("owner %s not found for project %s", projectData.OwnerEmail, projectData.Title)
	}

	var project models.Project
	err := db.Where("title = ? AND user_id = ?", projectData.Title, owner.ID).First(&project).Error
	if err == nil {
		return &project, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query project: %w", err)
	}

	status := models.ProjectStatusDraft
	if projectData.Status != "" {
		status = models.ProjectStatus(projectData.Status)
	}
	if !status.IsValid() {
		return nil, false, fmt.Errorf("invalid status %q", projectData.Status)
	}

	project = models.Project{
		Title:       projectData.Title,
		Description: projectData.Description,
		Status:      status,
		UserID:      owner.ID,
	}
	if projectData.DueInDays != nil {
		due := time.Now().UTC().AddDate(0, 0, *projectData.DueInDays)
		project.DueDate = &due
	}

	if err := db.Create(&project).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, true, nil
}

// createProjectTeam links the listed members to project, skipping unknown
// emails and existing rows. It returns the number of rows created.
func createProjectTeam(db *gorm.DB, project *models.Project, emails []string, userMap map[string]*models.User) int {
	created := 0
	seen := make(map[uuid.UUID]bool, len(emails))
	for _, email := range emails {
		user := userMap[strings.ToLower(email)]
		if user == nil {
			log.Printf("⚠️  Warning: team member %s not found for project %s", email, project.Title)
			continue
		}
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true

		var count int64
		if err := db.Model(&models.ProjectTeamMember{}).
			Where("project_id = ? AND user_id = ?", project.ID, user.ID).
			Count(&count).Error; err != nil {
			log.Printf("⚠️  Warning: failed to query team of %s: %v", project.Title, err)
			continue
		}
		if count > 0 {
			continue
		}

		row := models.ProjectTeamMember{ProjectID: project.ID, UserID: user.ID}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("⚠️  Warning: failed to add %s to %s: %v", email, project.Title, err)
			continue
		}
		created++
	}
	return created
}
