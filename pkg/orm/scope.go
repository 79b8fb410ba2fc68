// Package orm provides composable query scopes and pagination helpers on top
// of GORM. A Scope is a typed predicate; repositories build dynamic filters
// by combining scopes with All (logical AND) instead of string-assembling SQL.
package orm

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Scope is a composable query predicate. A nil Scope is skipped by All, so
// conditional filters read as plain expressions:
//
//	db.Scopes(orm.All(
//	    orm.Eq("category", category),
//	    orm.PriceBetween("price", minPrice, maxPrice),
//	))
type Scope func(*gorm.DB) *gorm.DB

// All combines scopes with logical AND, skipping nil entries.
func All(scopes ...Scope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, s := range scopes {
			if s != nil {
				db = s(db)
			}
		}
		return db
	}
}

// Eq filters column = value. Returns nil (no-op) when value is empty.
func Eq(column, value string) Scope {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// EqInt filters column = value. Returns nil when value is zero.
func EqInt(column string, value int) Scope {
	if value == 0 {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// Between filters column into the [min, max] range; either bound may be nil.
func Between(column string, min, max *float64) Scope {
	switch {
	case min == nil && max == nil:
		return nil
	case min == nil:
		return func(db *gorm.DB) *gorm.DB { return db.Where(column+" <= ?", *max) }
	case max == nil:
		return func(db *gorm.DB) *gorm.DB { return db.Where(column+" >= ?", *min) }
	default:
		return func(db *gorm.DB) *gorm.DB { return db.Where(column+" BETWEEN ? AND ?", *min, *max) }
	}
}

// Keyword builds a case-insensitive LIKE over one or more columns (OR-ed).
// Returns nil when keyword is blank.
func Keyword(keyword string, columns ...string) Scope {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || len(columns) == 0 {
		return nil
	}

	pattern := "%" + strings.ToLower(keyword) + "%"
	conds := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// IDOrKeyword behaves like Keyword but, when the keyword parses as a
// number, also accepts rows whose id equals it. A numeric keyword still
// matches the text columns, so searching "123" finds both order 123 and
// customers with "123" in their name. Returns nil when keyword is blank.
func IDOrKeyword(keyword string, columns ...string) Scope {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}
	id, err := strconv.ParseUint(keyword, 10, 64)
	if err != nil {
		return Keyword(keyword, columns...)
	}

	pattern := "%" + strings.ToLower(keyword) + "%"
	conds := []string{"id = ?"}
	args := []interface{}{id}
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}
