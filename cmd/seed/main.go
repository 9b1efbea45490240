package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"civicconnect/internal/database"
	"civicconnect/internal/domain"
	"civicconnect/internal/pkg/ident"
	"civicconnect/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "civicconnect.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// cleanup in FK-safe order
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM contributions")
	db.Exec("DELETE FROM reports")
	db.Exec("DELETE FROM settings")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	reports := repository.NewReportRepository(db)
	settings := repository.NewSettingRepository(db)

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		FirstName:    "City",
		LastName:     "Admin",
		Username:     "admin",
		Email:        "admin@civicconnect.kz",
		Phone:        "7010000001",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		IsVerified:   true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("create admin:", err)
	}
	log.Println("Admin created: admin@civicconnect.kz / admin123")

	demo := make([]*domain.User, 0, 3)
	names := [][2]string{{"Asel", "Nur"}, {"Bekzat", "Omar"}, {"Dina", "Kair"}}
	for i, n := range names {
		hash, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
		u := &domain.User{
			FirstName:    n[0],
			LastName:     n[1],
			Username:     fmt.Sprintf("demo%d", i+1),
			Email:        fmt.Sprintf("demo%d@mail.kz", i+1),
			Phone:        fmt.Sprintf("701555010%d", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			IsVerified:   true,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("create demo user:", err)
		}
		demo = append(demo, u)
	}

	log.Println("Creating reports...")
	longDescription := "The streetlight at the corner has been flickering for two weeks and now stays " +
		"completely dark after sunset, which makes the pedestrian crossing hard to see for drivers " +
		"and leaves the whole block without any working lighting at night."
	sample := []struct {
		title      string
		department string
		address    string
		status     domain.ReportStatus
	}{
		{"Broken streetlight near crossing", "lighting", "Abay avenue 12", domain.StatusOpen},
		{"Deep pothole on main road", "roads", "Dostyk street 4", domain.StatusInProgress},
		{"Overflowing bins behind market", "waste", "Zhibek Zholy 88", domain.StatusResolved},
	}
	for i, sr := range sample {
		rep := &domain.Report{
			ReportID:    ident.ReportID(),
			UserID:      demo[i%len(demo)].ID,
			Title:       sr.title,
			Department:  sr.department,
			Address:     sr.address,
			Description: longDescription,
			Status:      domain.StatusOpen,
		}
		if err := reports.Create(ctx, rep); err != nil {
			log.Fatal("create report:", err)
		}
		// walk the lifecycle instead of jumping straight to the target
		for _, step := range lifecycleSteps(sr.status) {
			if err := reports.UpdateStatus(ctx, rep.ID, step); err != nil {
				log.Fatal("set report status:", err)
			}
		}
	}

	log.Println("Creating settings...")
	if err := settings.Set(ctx, domain.SettingDepartments, "roads,lighting,waste,water,parks"); err != nil {
		log.Fatal("set departments:", err)
	}
	if err := settings.Set(ctx, domain.SettingUploadsEnabled, "true"); err != nil {
		log.Fatal("set uploads_enabled:", err)
	}

	log.Println("Seed complete.")
}

func lifecycleSteps(target domain.ReportStatus) []domain.ReportStatus {
	switch target {
	case domain.StatusInProgress:
		return []domain.ReportStatus{domain.StatusInProgress}
	case domain.StatusResolved:
		return []domain.ReportStatus{domain.StatusInProgress, domain.StatusResolved}
	case domain.StatusClosed:
		return []domain.ReportStatus{domain.StatusClosed}
	default:
		return nil
	}
}
