package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"promo-admin/internal/config"
	"promo-admin/internal/database"
	"promo-admin/internal/repository"
	"promo-admin/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	timeout time.Duration
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Operator tasks for the promo admin database",
	Long: `adminctl runs maintenance tasks against the database configured through
the DB_* environment variables (or a .env file in the working directory).`,
	SilenceUsage: true,
}

// migrateCmd creates the promos and menu tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the promos and menu tables if they do not exist",
	RunE:  runMigrate,
}

// pingCmd checks connectivity.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check database connectivity and print the database name",
	RunE:  runPing,
}

// seedMenuCmd inserts sample menu items.
var seedMenuCmd = &cobra.Command{
	Use:   "seed-menu",
	Short: "Insert sample menu items with generated UUIDs",
	RunE:  runSeedMenu,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(seedMenuCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect loads the database settings and opens a pool.
func connect(ctx context.Context) (*pgxpool.Pool, error) {
	dbCfg, logCfg, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}
	logger = config.NewLogger(logCfg).With().Str("component", "adminctl").Logger()

	pool, err := database.NewPool(ctx, dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return pool, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return nil
}

func runPing(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully connected to database: %s\n", dbName)
	return nil
}

func runSeedMenu(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	menuService := service.NewMenuService(repository.NewMenuRepository(pool, logger), logger)

	for _, item := range sampleMenu {
		menu, err := menuService.Create(ctx, "", item)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", item["nama_menu"], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", menu.IDMenu, menu.NamaMenu)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d menu items\n", len(sampleMenu))
	return nil
}

var sampleMenu = []map[string]string{
	{
		"nama_menu":      "Nasi Goreng Spesial",
		"foto_menu":      "nasi-goreng.jpg",
		"deskripsi_menu": "Nasi goreng dengan telur, ayam suwir dan kerupuk",
		"harga_menu":     "25000",
		"kategori":       "makanan",
	},
	{
		"nama_menu":      "Mie Ayam Bakso",
		"foto_menu":      "mie-ayam.jpg",
		"deskripsi_menu": "Mie ayam dengan bakso sapi",
		"harga_menu":     "22000",
		"kategori":       "makanan",
	},
	{
		"nama_menu":      "Es Teh Manis",
		"foto_menu":      "es-teh.jpg",
		"deskripsi_menu": "Teh melati dingin",
		"harga_menu":     "5000",
		"kategori":       "minuman",
	},
	{
		"nama_menu":      "Es Jeruk",
		"foto_menu":      "es-jeruk.jpg",
		"deskripsi_menu": "Jeruk peras segar",
		"harga_menu":     "8000",
		"kategori":       "minuman",
	},
	{
		"nama_menu":      "Pisang Goreng",
		"foto_menu":      "pisang-goreng.jpg",
		"deskripsi_menu": "Pisang kepok goreng tepung",
		"harga_menu":     "12000",
		"kategori":       "camilan",
	},
}
