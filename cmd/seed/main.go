// Command seed wipes and repopulates the parking database with the demo
// building layout and two accounts (admin@example.com / user@example.com,
// password "password123").
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/pkg/config"
	"github.com/prohmpiriya/smart-parking/pkg/database"
)

type buildingLayout struct {
	Name            string
	Floors          int
	Sections        []string
	SlotsPerSection int
	SpecialSlots    map[domain.SlotType]int
}

var buildings = []buildingLayout{
	{
		Name:            "A",
		Floors:          3,
		Sections:        []string{"North", "South", "East", "West"},
		SlotsPerSection: 15,
		SpecialSlots: map[domain.SlotType]int{
			domain.SlotTypeHandicapped: 2,
			domain.SlotTypeElectric:    2,
			domain.SlotTypeVIP:         1,
		},
	},
	{
		Name:            "B",
		Floors:          4,
		Sections:        []string{"North", "South"},
		SlotsPerSection: 20,
		SpecialSlots: map[domain.SlotType]int{
			domain.SlotTypeHandicapped: 3,
			domain.SlotTypeElectric:    4,
			domain.SlotTypeVIP:         2,
		},
	},
	{
		Name:            "C",
		Floors:          2,
		Sections:        []string{"Main", "Wing"},
		SlotsPerSection: 25,
		SpecialSlots: map[domain.SlotType]int{
			domain.SlotTypeHandicapped: 4,
			domain.SlotTypeElectric:    5,
			domain.SlotTypeCompact:     10,
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := seed(ctx, db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

func seed(ctx context.Context, db *database.PostgresDB) error {
	pool := db.Pool()

	for _, table := range []string{"bookings", "user_vehicles", "parking_slots", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Data cleared...")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	insertUser := `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`
	if _, err := pool.Exec(ctx, insertUser, uuid.New().String(), "Admin User", "admin@example.com", string(hash), domain.RoleAdmin, now); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	userID := uuid.New().String()
	if _, err := pool.Exec(ctx, insertUser, userID, "Test User", "user@example.com", string(hash), domain.RoleUser, now); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	for _, plate := range []string{"ABC123", "XYZ789"} {
		_, err := pool.Exec(ctx,
			`INSERT INTO user_vehicles (id, user_id, plate_number, created_at) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), userID, plate, now)
		if err != nil {
			return fmt.Errorf("failed to create vehicle: %w", err)
		}
	}
	log.Println("Users created...")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	insertSlot := `
		INSERT INTO parking_slots (id, slot_number, building, floor, section, status, type,
			coord_x, coord_y, width, height, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
	`

	total := 0
	for _, b := range buildings {
		for floor := 1; floor <= b.Floors; floor++ {
			for _, section := range b.Sections {
				baseX := float64(b.Name[0]) * 100
				baseY := float64(floor) * 100

				special := make([]domain.SlotType, 0)
				for slotType, count := range b.SpecialSlots {
					for i := 0; i < count; i++ {
						special = append(special, slotType)
					}
				}

				for i := 1; i <= b.SlotsPerSection; i++ {
					slotType := domain.SlotTypeStandard
					if len(special) > 0 && rng.Float64() < 0.3 {
						idx := rng.Intn(len(special))
						slotType = special[idx]
						special = append(special[:idx], special[idx+1:]...)
					}

					row := (i - 1) / 5
					col := (i - 1) % 5
					slotNumber := fmt.Sprintf("%s%d%c%02d", b.Name, floor, section[0], i)

					_, err := pool.Exec(ctx, insertSlot,
						uuid.New().String(),
						slotNumber,
						b.Name,
						floor,
						section,
						domain.SlotStatusEmpty,
						slotType,
						baseX+float64(col)*30,
						baseY+float64(row)*40,
						2.5,
						5.0,
						now,
					)
					if err != nil {
						return fmt.Errorf("failed to create slot %s: %w", slotNumber, err)
					}
					total++
				}
			}
		}
	}

	log.Printf("Created %d parking slots across %d buildings", total, len(buildings))
	return nil
}
