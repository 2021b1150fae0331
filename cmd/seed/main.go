package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"laundryhub/internal/database"
	"laundryhub/internal/domain"
	"laundryhub/internal/repository"
)

// Seeds the demo catalog, a manager account and a few staff members so a
// fresh install is usable right away. Running it twice is safe: existing
// rows are left alone.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "laundry.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed: ", err)
	}

	ctx := context.Background()
	catalogRepo := repository.NewCatalogRepository(db)
	userRepo := repository.NewUserRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	garments := []domain.GarmentType{
		{Name: "native_wear", BasePrice: decimal.RequireFromString("1000.00"), Description: "Traditional native wear"},
		{Name: "english_wear", BasePrice: decimal.RequireFromString("1500.00"), Description: "Shirts, trousers, suits"},
		{Name: "bed_sheet", BasePrice: decimal.RequireFromString("2000.00"), Description: "Bed sheets and duvet covers"},
		{Name: "agbada", BasePrice: decimal.RequireFromString("2500.00"), Description: "Agbada and other large garments"},
	}
	existing, err := catalogRepo.ListGarmentTypes(ctx)
	if err != nil {
		log.Fatal(err)
	}
	have := make(map[string]bool, len(existing))
	for _, g := range existing {
		have[g.Name] = true
	}
	for _, g := range garments {
		if have[g.Name] {
			continue
		}
		g := g
		if err := catalogRepo.CreateGarmentType(ctx, &g); err != nil {
			log.Fatal(err)
		}
		log.Printf("garment type seeded name=%s base_price=%s", g.Name, g.BasePrice.StringFixed(2))
	}

	services := []domain.ServiceType{
		{Name: "regular", PriceMultiplier: decimal.RequireFromString("1.0"), Description: "Standard turnaround"},
		{Name: "express", PriceMultiplier: decimal.RequireFromString("2.0"), Description: "Same-day express service"},
	}
	existingServices, err := catalogRepo.ListServiceTypes(ctx)
	if err != nil {
		log.Fatal(err)
	}
	haveService := make(map[string]bool, len(existingServices))
	for _, s := range existingServices {
		haveService[s.Name] = true
	}
	for _, s := range services {
		if haveService[s.Name] {
			continue
		}
		s := s
		if err := catalogRepo.CreateServiceType(ctx, &s); err != nil {
			log.Fatal(err)
		}
		log.Printf("service type seeded name=%s multiplier=%s", s.Name, s.PriceMultiplier.String())
	}

	seedManager(ctx, userRepo, staffRepo)

	log.Println("Seed complete")
}

func seedManager(ctx context.Context, users *repository.UserRepository, staff *repository.StaffRepository) {
	email := os.Getenv("SEED_MANAGER_EMAIL")
	if email == "" {
		email = "manager@laundryhub.local"
	}
	password := os.Getenv("SEED_MANAGER_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		log.Fatal(err)
	}
	if exists {
		log.Printf("manager account already present email=%s", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Manager",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal(err)
	}

	st := &domain.Staff{
		UserID:    &u.ID,
		Name:      "Manager",
		Role:      domain.RoleManager,
		IsActive:  true,
		CreatedAt: now,
	}
	if err := staff.Create(ctx, st); err != nil {
		log.Fatal(err)
	}
	log.Printf("manager account seeded email=%s", email)
}
