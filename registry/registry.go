// Package registry provides SQLite-backed persistence for the record-keeper
// caller: the household roll, catalogue overrides, the working budget, and
// the last allocation ledger. The allocation core never touches this package:
// loading happens before a pass, saving strictly after its completion.
package registry

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/relief-sim/relief-sim/alloc"
	"github.com/relief-sim/relief-sim/alloc/ledger"
)

// Registry is a SQLite-backed store of households and allocation state.
// Safe for concurrent use by multiple goroutines.
type Registry struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (creating if necessary) a registry database at the given path.
// Use ":memory:" for an in-memory registry in tests.
func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	r := &Registry{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating registry: %w", err)
	}
	return r, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}

func (r *Registry) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS households (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		members INTEGER NOT NULL,
		ages TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS catalogue (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		cost INTEGER NOT NULL,
		available INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS budget (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		amount INTEGER NOT NULL
	);

	-- One row per household per pass; quantities live in allocations.
	CREATE TABLE IF NOT EXISTS records (
		household_id INTEGER PRIMARY KEY REFERENCES households(id),
		evaluated INTEGER NOT NULL,
		total_cost INTEGER NOT NULL,
		wait_index INTEGER NOT NULL,
		priority REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS allocations (
		household_id INTEGER NOT NULL REFERENCES households(id),
		resource TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (household_id, resource)
	);
	`
	_, err := r.db.Exec(schema)
	return err
}

// AddHousehold assigns the next ID and stores a validated household.
// IDs follow insertion order and are never reused within a registry.
func (r *Registry) AddHousehold(name string, members int, ages []int) (*alloc.Household, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID sql.NullInt64
	if err := r.db.QueryRow(`SELECT MAX(id) FROM households`).Scan(&maxID); err != nil {
		return nil, fmt.Errorf("allocating household id: %w", err)
	}
	id := int(maxID.Int64) + 1

	h, err := alloc.NewHousehold(id, name, members, ages)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.Exec(`INSERT INTO households (id, name, members, ages) VALUES (?, ?, ?, ?)`,
		h.ID, h.Name, len(h.Ages), joinAges(h.Ages)); err != nil {
		return nil, fmt.Errorf("inserting household: %w", err)
	}
	return h, nil
}

// RemoveHousehold deletes a household and its allocation rows.
func (r *Registry) RemoveHousehold(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.Exec(`DELETE FROM allocations WHERE household_id = ?`, id); err != nil {
		return fmt.Errorf("deleting allocations: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM records WHERE household_id = ?`, id); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	res, err := r.db.Exec(`DELETE FROM households WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting household: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("household %d not found", id)
	}
	return nil
}

// Households returns all registered households in ID order.
func (r *Registry) Households() ([]*alloc.Household, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(`SELECT id, name, members, ages FROM households ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying households: %w", err)
	}
	defer rows.Close()

	var households []*alloc.Household
	for rows.Next() {
		var (
			id, members int
			name, ages  string
		)
		if err := rows.Scan(&id, &name, &members, &ages); err != nil {
			return nil, fmt.Errorf("scanning household: %w", err)
		}
		parsed, err := splitAges(ages)
		if err != nil {
			return nil, fmt.Errorf("household %d: %w", id, err)
		}
		h, err := alloc.NewHousehold(id, name, members, parsed)
		if err != nil {
			return nil, err
		}
		households = append(households, h)
	}
	return households, rows.Err()
}

// SetBudget stores the working budget (the treasurer's single mutable row).
func (r *Registry) SetBudget(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("budget must be non-negative, got %d", amount)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.Exec(`INSERT INTO budget (id, amount) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET amount = excluded.amount`, amount)
	return err
}

// Budget returns the stored budget. ok is false when none has been set.
func (r *Registry) Budget() (amount int64, ok bool, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	err = r.db.QueryRow(`SELECT amount FROM budget WHERE id = 1`).Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return amount, true, nil
}

// SaveCatalogue replaces the stored catalogue, preserving scan order.
func (r *Registry) SaveCatalogue(catalogue []alloc.ResourceType) error {
	if err := alloc.ValidateCatalogue(catalogue); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM catalogue`); err != nil {
		return fmt.Errorf("clearing catalogue: %w", err)
	}
	for i, rt := range catalogue {
		if _, err := tx.Exec(`INSERT INTO catalogue (position, name, kind, cost, available) VALUES (?, ?, ?, ?, ?)`,
			i, rt.Name, string(rt.Kind), rt.Cost, rt.Available); err != nil {
			return fmt.Errorf("inserting resource %q: %w", rt.Name, err)
		}
	}
	return tx.Commit()
}

// Catalogue returns the stored catalogue in scan order, or nil when none has
// been saved (callers fall back to their scenario's catalogue).
func (r *Registry) Catalogue() ([]alloc.ResourceType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(`SELECT name, kind, cost, available FROM catalogue ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying catalogue: %w", err)
	}
	defer rows.Close()

	var catalogue []alloc.ResourceType
	for rows.Next() {
		var rt alloc.ResourceType
		var kind string
		if err := rows.Scan(&rt.Name, &kind, &rt.Cost, &rt.Available); err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		rt.Kind = alloc.ResourceKind(kind)
		catalogue = append(catalogue, rt)
	}
	return catalogue, rows.Err()
}

// ReplaceLedger stores a pass's ledger wholesale, discarding any prior one.
// Each pass fully replaces the previous ledger; there is no cross-pass
// carry-over inside the core, so none is persisted either.
func (r *Registry) ReplaceLedger(l ledger.Ledger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM allocations`); err != nil {
		return fmt.Errorf("clearing allocations: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	for _, rec := range l {
		if _, err := tx.Exec(`INSERT INTO records (household_id, evaluated, total_cost, wait_index, priority) VALUES (?, ?, ?, ?, ?)`,
			rec.HouseholdID, boolToInt(rec.Evaluated), rec.TotalCost, rec.WaitIndex, rec.Priority); err != nil {
			return fmt.Errorf("inserting record for household %d: %w", rec.HouseholdID, err)
		}
		for resource, qty := range rec.Quantities {
			if _, err := tx.Exec(`INSERT INTO allocations (household_id, resource, quantity) VALUES (?, ?, ?)`,
				rec.HouseholdID, resource, qty); err != nil {
				return fmt.Errorf("inserting allocation for household %d: %w", rec.HouseholdID, err)
			}
		}
	}
	return tx.Commit()
}

// Ledger reconstructs the stored ledger in wait-index order.
func (r *Registry) Ledger() (ledger.Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(`SELECT r.household_id, h.name, r.evaluated, r.total_cost, r.wait_index, r.priority
		FROM records r JOIN households h ON h.id = r.household_id
		ORDER BY r.wait_index, r.household_id`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out ledger.Ledger
	for rows.Next() {
		var rec ledger.Record
		var evaluated int
		if err := rows.Scan(&rec.HouseholdID, &rec.Name, &evaluated, &rec.TotalCost, &rec.WaitIndex, &rec.Priority); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Evaluated = evaluated != 0
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if !out[i].Evaluated {
			continue
		}
		qrows, err := r.db.Query(`SELECT resource, quantity FROM allocations WHERE household_id = ?`, out[i].HouseholdID)
		if err != nil {
			return nil, fmt.Errorf("querying allocations: %w", err)
		}
		quantities := make(map[string]int64)
		for qrows.Next() {
			var resource string
			var qty int64
			if err := qrows.Scan(&resource, &qty); err != nil {
				qrows.Close()
				return nil, fmt.Errorf("scanning allocation: %w", err)
			}
			quantities[resource] = qty
		}
		if err := qrows.Err(); err != nil {
			qrows.Close()
			return nil, err
		}
		qrows.Close()
		out[i].Quantities = quantities
	}
	return out, nil
}

// joinAges renders an age list as comma-separated text, the registry's
// storage format for age lists.
func joinAges(ages []int) string {
	parts := make([]string, len(ages))
	for i, age := range ages {
		parts[i] = strconv.Itoa(age)
	}
	return strings.Join(parts, ",")
}

// splitAges parses comma-separated ages back into a list.
func splitAges(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ages := make([]int, 0, len(parts))
	for _, p := range parts {
		age, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid age %q", p)
		}
		ages = append(ages, age)
	}
	return ages, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
