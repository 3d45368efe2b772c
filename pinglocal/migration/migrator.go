package migration

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/pinglocal/pinglocal/pinglocal/config"
	"github.com/pinglocal/pinglocal/pinglocal/database"
	"github.com/pinglocal/pinglocal/pinglocal/database/models"
)

// Migrator creates the schema and installs the row-change notify triggers the
// realtime channel depends on.
type Migrator struct {
	db *database.DB
}

func NewMigrator(db *database.DB) *Migrator {
	return &Migrator{db: db}
}

func (m *Migrator) MigrateAll(ctx context.Context) error {
	if err := m.createTables(ctx); err != nil {
		return err
	}
	if err := m.installNotifyTriggers(ctx); err != nil {
		return err
	}
	slog.Info("Migration complete", slog.String("type", "db"))
	return nil
}

func (m *Migrator) createTables(ctx context.Context) error {
	tables := []interface{}{
		(*models.Business)(nil),
		(*models.Offer)(nil),
		(*models.OfferSlot)(nil),
		(*models.PurchaseToken)(nil),
		(*models.RedemptionToken)(nil),
		(*models.PointsEntry)(nil),
		(*models.LoyaltyAccount)(nil),
		(*models.Notification)(nil),
	}

	for _, table := range tables {
		_, err := m.db.BunDB().NewCreateTable().
			Model(table).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for %T: %w", table, err)
		}
	}
	return nil
}

// installNotifyTriggers publishes every committed change to the redemption
// and purchase tables on a single NOTIFY channel. The payload carries the
// event type plus old and new rows; subscribers filter by row id.
func (m *Migrator) installNotifyTriggers(ctx context.Context) error {
	fn := fmt.Sprintf(`
CREATE OR REPLACE FUNCTION pinglocal_notify_change() RETURNS trigger AS $$
DECLARE
	payload JSON;
BEGIN
	payload = json_build_object(
		'event', TG_OP,
		'table', TG_TABLE_NAME,
		'new', CASE WHEN TG_OP = 'DELETE' THEN NULL ELSE row_to_json(NEW) END,
		'old', CASE WHEN TG_OP = 'INSERT' THEN NULL ELSE row_to_json(OLD) END
	);
	PERFORM pg_notify('%s', payload::text);
	RETURN COALESCE(NEW, OLD);
END;
$$ LANGUAGE plpgsql;`, config.NotifyChannel)

	if _, err := m.db.ExecWithLog(ctx, fn); err != nil {
		return fmt.Errorf("failed to create notify function: %w", err)
	}

	for _, table := range []string{"redemption_tokens", "purchase_tokens"} {
		stmt := fmt.Sprintf(`
DROP TRIGGER IF EXISTS %[1]s_notify ON %[1]s;
CREATE TRIGGER %[1]s_notify
AFTER INSERT OR UPDATE OR DELETE ON %[1]s
FOR EACH ROW EXECUTE FUNCTION pinglocal_notify_change();`, table)

		if _, err := m.db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create trigger on %s: %w", table, err)
		}
	}
	return nil
}
