package database

import (
	"fmt"
	"log"

	config "github.com/lunamistica/tarot_platform/configs"
	"github.com/lunamistica/tarot_platform/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Tarotista{},
		&models.WeeklyAvailability{},
		&models.AvailabilityException{},
		&models.Session{},
		&models.Reading{},
		&models.InterpretationCache{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}

	// Active sessions may not share a start slot per tarotista and date.
	// Cancelled rows are excluded so a freed slot can be rebooked.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_active_slot
		ON sessions (tarotista_id, session_date, session_time)
		WHERE status NOT IN ('cancelled_by_user', 'cancelled_by_tarotist')`).Error
	if err != nil {
		log.Fatalf("🔥 Failed to create active-slot index: %v", err)
	}

	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
