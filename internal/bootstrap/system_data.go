package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/Andtit4/site-database-sub001/internal/config"
)

// AdminSeeder creates the first administrator
type AdminSeeder interface {
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

// InitializeSystemData ensures required system data exists.
// This should be called during server startup BEFORE accepting requests.
func InitializeSystemData(ctx context.Context, seeder AdminSeeder, cfg config.AuthConfig) error {
	log.Println("🔧 Initializing system data...")

	created, err := seeder.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}
	if created {
		log.Printf("   ✅ Created admin user %s", cfg.AdminEmail)
	} else {
		log.Println("   ✓ Users already present, admin bootstrap skipped")
	}
	return nil
}
