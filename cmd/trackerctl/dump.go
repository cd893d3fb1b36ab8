package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/config"
	"github.com/BuzzLyutic/team-tracker/internal/db"
)

var dumpTables = []string{"projects", "tasks", "team_members", "notifications", "notification_deliveries"}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Connect to the database and ping it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer clients.Close()
		fmt.Fprintln(cmd.OutOrStdout(), "database reachable")
		return nil
	},
}

func newDumpCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:       "dump <table>",
		Short:     "Print rows of a table as JSON lines",
		Args:      cobra.ExactArgs(1),
		ValidArgs: dumpTables,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			if !slices.Contains(dumpTables, table) {
				return fmt.Errorf("unknown table %q, expected one of %v", table, dumpTables)
			}

			clients, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer clients.Close()

			n, err := dumpTable(cmd.Context(), clients.Service, cmd.OutOrStdout(), table, limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d rows from %s\n", n, table)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows to print")
	return cmd
}

func connect(ctx context.Context) (*db.Clients, error) {
	if missing := config.Missing(); slices.Contains(missing, "DATABASE_URL") {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Open(ctx, cfg, zap.NewNop())
}

func dumpTable(ctx context.Context, pool *pgxpool.Pool, w io.Writer, table string, limit int) (int, error) {
	rows, err := pool.Query(ctx,
		"SELECT * FROM "+pgx.Identifier{table}.Sanitize()+" ORDER BY 1 LIMIT $1", limit)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	enc := json.NewEncoder(w)
	n := 0
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return n, err
		}
		if err := enc.Encode(rowToMap(fields, values)); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}

func rowToMap(fields []pgconn.FieldDescription, values []any) map[string]any {
	out := make(map[string]any, len(values))
	for i, v := range values {
		if b, ok := v.([16]byte); ok {
			v = uuid.UUID(b).String()
		}
		out[fields[i].Name] = v
	}
	return out
}
