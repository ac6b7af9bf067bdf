package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amiramtracker/backend/internal/models"
	"go.uber.org/zap"
)

// deleteOwned deletes a row of table by id, scoped to its owner.
// table is always a package constant, never user input.
func deleteOwned(ctx context.Context, db *sql.DB, logger *zap.Logger, table string, id, userID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, table)

	result, err := db.ExecContext(ctx, query, id, userID)
	if err != nil {
		logger.Error("failed to delete row", zap.String("table", table), zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s row %d: %w", table, id, models.ErrNotFound)
	}

	return nil
}
