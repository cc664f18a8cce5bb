package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/guangfu250923/relief-backend/repository/models"
	"github.com/guangfu250923/relief-backend/validation"
)

// PostgreSQL error codes as constants
const (
	// Class 23: Integrity Constraint Violation
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrCheckViolation      = "23514" // check_violation
	PgErrNotNullViolation    = "23502" // not_null_violation
)

// Application-level error codes shared by all repository operations.
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "ENTITY_NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeDatabase     = "DATABASE_ERROR"
)

// RepositoryError represents an error in the repository layer (db/validation)
type RepositoryError struct {
	Code    string
	Message string
	Detail  string
	Fields  []validation.FieldError
}

func (e *RepositoryError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func validationError(fields ...validation.FieldError) *RepositoryError {
	detail := ""
	if len(fields) > 0 {
		detail = fields[0].Error()
	}
	return &RepositoryError{
		Code:    ErrCodeValidation,
		Message: "invalid input",
		Detail:  detail,
		Fields:  fields,
	}
}

func pinMismatchError() *RepositoryError {
	return &RepositoryError{
		Code:    ErrCodeUnauthorized,
		Message: "The PIN you entered is incorrect.",
	}
}

func notFoundError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Detail:  fmt.Sprintf("%s with id %s does not exist", entity, id),
	}
}

// wrapDBError maps a storage failure onto the repository error taxonomy.
// Postgres constraint violations become conflicts; everything else is an
// internal database error.
func wrapDBError(err error) *RepositoryError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrUniqueViolation, PgErrForeignKeyViolation, PgErrCheckViolation, PgErrNotNullViolation:
			return &RepositoryError{
				Code:    ErrCodeConflict,
				Message: pgErr.Message,
				Detail:  pgErr.Detail,
			}
		default:
			return &RepositoryError{
				Code:    pgErr.Code,
				Message: pgErr.Message,
				Detail:  pgErr.Detail,
			}
		}
	}
	return &RepositoryError{
		Code:    ErrCodeDatabase,
		Message: "Database error occurred",
		Detail:  err.Error(),
	}
}

// Repository owns all database access. Every mutating operation runs inside
// an explicit transaction and either commits fully or rolls back fully.
type Repository struct {
	db *gorm.DB
}

func NewRepository() *Repository {
	return &Repository{}
}

// NewRepositoryWithDB wraps an already-open database handle. Used by tests
// to run against an in-memory database.
func NewRepositoryWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ConnectDB opens the Postgres connection, retrying while the database
// container comes up.
func (r *Repository) ConnectDB(dsn string) error {
	var lastErr error
	for i := range 10 {
		db, err := gorm.Open(postgres.Open(dsn))
		if err != nil {
			lastErr = err
			log.Printf("Connection attempt %d failed: %v\n", i+1, err)
			time.Sleep(2 * time.Second)
			continue
		}
		r.db = db
		log.Println("Connected to Postgres")
		return nil
	}
	return fmt.Errorf("connecting to database: %w", lastErr)
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&models.Supply{},
		&models.SupplyItem{},
		&models.HumanResource{},
		&models.Shelter{},
	)
}

// forUpdate adds a row-level write lock to the query. SQLite (used in
// tests) does not support FOR UPDATE; its single-writer transactions
// already serialize conflicting updates.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
