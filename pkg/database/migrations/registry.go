package migrations

import (
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"
)

// Func applies one schema step.
type Func func(*gorm.DB) error

type namedMigration struct {
	name string
	fn   Func
}

var (
	registryMu sync.RWMutex
	registry   []namedMigration
)

// Register adds a migration to the registry in FIFO order. Names must be unique.
func Register(name string, fn Func) {
	registryMu.Lock()
	defer registryMu.Unlock()

	for _, m := range registry {
		if m.name == name {
			panic(fmt.Sprintf("migrations: %q registered twice", name))
		}
	}
	registry = append(registry, namedMigration{name: name, fn: fn})
}

// Names lists registered migrations in execution order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for _, m := range registry {
		names = append(names, m.name)
	}
	return names
}

// Run executes registered migrations sequentially and stops at the first failure.
func Run(db *gorm.DB, log *slog.Logger) error {
	registryMu.RLock()
	pending := make([]namedMigration, len(registry))
	copy(pending, registry)
	registryMu.RUnlock()

	if len(pending) == 0 {
		log.Info("no database migrations registered")
		return nil
	}

	for _, migration := range pending {
		log.Info("running migration", slog.String("name", migration.name))

		if err := migration.fn(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.name, err)
		}
	}

	log.Info("database migrations completed", slog.Int("count", len(pending)))
	return nil
}

func reset() {
	registryMu.Lock()
	registry = nil
	registryMu.Unlock()
}
