// Package migration tracks and applies schema migrations.
//
// Each migration lives in database/migrations and registers itself in an
// init func:
//
//	func init() {
//	    migration.Register("20260110000000_create_products_table", &CreateProductsTable{})
//	}
//
// The CLI drives the runner: `bikeshop migrate`, `bikeshop migrate:rollback`,
// `bikeshop migrate:status`.
package migration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/pkg/logger"
)

// Migration is what every schema change implements.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// record tracks an applied migration in the database.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "migrations" }

type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds a migration under a timestamp-prefixed name. Names sort
// lexicographically, which gives chronological order.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// Runner executes registered migrations against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&record{})
}

func (r *Runner) pending() ([]entry, error) {
	var ran []record
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, err
	}

	ranSet := make(map[string]bool, len(ran))
	for _, rec := range ran {
		ranSet[rec.Name] = true
	}

	var out []entry
	for _, e := range registry {
		if !ranSet[e.name] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}

// Run applies every pending migration in one batch.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to migrate.")
		return nil
	}

	batch := r.nextBatch()
	for _, e := range pending {
		logger.Info("migrating", "name", e.name)
		fmt.Printf("  Migrating: %s\n", e.name)

		if err := e.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		if err := r.db.Create(&record{Name: e.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", e.name, err)
		}
		fmt.Printf("  Migrated:  %s\n", e.name)
	}

	logger.Info("migrations applied", "count", len(pending), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	batch := r.lastBatch()
	if batch == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}

	var records []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, e := range registry {
		byName[e.name] = e.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		logger.Info("rolling back", "name", rec.Name)
		fmt.Printf("  Rolling back: %s\n", rec.Name)

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return err
		}
		fmt.Printf("  Rolled back:  %s\n", rec.Name)
	}
	return nil
}

// Status prints every registered migration and whether it has run.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	var ran []record
	if err := r.db.Find(&ran).Error; err != nil {
		return err
	}
	ranMap := make(map[string]record, len(ran))
	for _, rec := range ran {
		ranMap[rec.Name] = rec
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Println(strings.Repeat("-", 78))
	for _, e := range registry {
		if rec, ok := ranMap[e.name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", e.name, "Ran", rec.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", e.name, "Pending")
		}
	}
	return nil
}

func (r *Runner) nextBatch() int { return r.lastBatch() + 1 }

func (r *Runner) lastBatch() int {
	var max struct{ Max int }
	r.db.Model(&record{}).Select("MAX(batch) as max").Scan(&max)
	return max.Max
}
