package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pinglocal/pinglocal/pinglocal/config"
	"github.com/uptrace/bun"
)

// BaseRepository provides common repository functionality
type BaseRepository struct {
	db             *bun.DB
	defaultTimeout time.Duration
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *bun.DB) *BaseRepository {
	return &BaseRepository{
		db:             db,
		defaultTimeout: config.DefaultQueryTimeout,
	}
}

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

// NotFoundError represents an entity not found error
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

// PreconditionError means a conditional update matched no row: the guard the
// write carried no longer holds. The state machine maps these to its own
// sentinels.
type PreconditionError struct {
	Operation string
	Entity    string
	ID        interface{}
}

func (pe *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed during %s for %s %v", pe.Operation, pe.Entity, pe.ID)
}

// WithTimeout creates a context with the default timeout
func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleError standardizes error handling across repositories
func (br *BaseRepository) HandleError(operation, entity string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: "unknown"}
	}

	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// HandleErrorWithID standardizes error handling with specific ID
func (br *BaseRepository) HandleErrorWithID(operation, entity string, id interface{}, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}

	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// ExecConditional runs a guarded update/delete and converts a zero-row result
// into a PreconditionError. Every state transition in the redemption flow
// goes through this so a late duplicate write is rejected, not applied.
func (br *BaseRepository) ExecConditional(ctx context.Context, operation, entity string, id interface{}, query func(context.Context) (sql.Result, error)) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	result, err := query(timeoutCtx)
	if err != nil {
		return br.HandleErrorWithID(operation, entity, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return br.HandleErrorWithID(operation, entity, id, err)
	}
	if affected == 0 {
		return &PreconditionError{Operation: operation, Entity: entity, ID: id}
	}
	return nil
}

// SelectOneWithTimeout executes a select one query with timeout and error handling
func (br *BaseRepository) SelectOneWithTimeout(ctx context.Context, operation, entity string, id interface{}, query func(context.Context) error) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	err := query(timeoutCtx)
	return br.HandleErrorWithID(operation, entity, id, err)
}

// SelectWithTimeout executes a select query with timeout and error handling
func (br *BaseRepository) SelectWithTimeout(ctx context.Context, operation, entity string, query func(context.Context) error) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	err := query(timeoutCtx)
	return br.HandleError(operation, entity, err)
}

// Transaction executes a function within a database transaction
func (br *BaseRepository) Transaction(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	return br.db.RunInTx(timeoutCtx, nil, fn)
}

// GetDB returns the underlying database connection
func (br *BaseRepository) GetDB() *bun.DB {
	return br.db
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsPrecondition checks if an error is a PreconditionError
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
