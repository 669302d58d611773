package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/go-nfl-metrics/internal/aggregator"
	"github.com/pable/go-nfl-metrics/internal/config"
	"github.com/pable/go-nfl-metrics/internal/logging"
	"github.com/pable/go-nfl-metrics/internal/season"
	"github.com/pable/go-nfl-metrics/internal/storage"
)

// version is overridden at build time with -ldflags "-X".
var version = "dev"

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nflmetrics",
	Short: "NFL play-by-play aggregation: team and player EPA leaderboards",
	Long: `nflmetrics ingests nflverse play-by-play and roster CSVs into a local
database and derives team efficiency tables, position leaderboards and
league summaries from them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./.nflmetrics.yaml, then $HOME/.nflmetrics.yaml)")
	pf.String("db", config.DefaultDBPath(), "path to the SQLite database")
	pf.String("backend", string(storage.SQLite), "storage backend: sqlite, postgresql or mysql")
	pf.String("dsn", "", "connection string for the postgresql or mysql backend")
	th := aggregator.DefaultThresholds()
	pf.Int("limit", aggregator.DefaultLimit, "maximum rows per leaderboard")
	pf.Int("min-qb-plays", th.QBPlays, "minimum dropbacks plus carries for a QB to rank")
	pf.Int("min-rb-rushes", th.RBRushes, "minimum carries for an RB to rank")
	pf.Int("min-wr-targets", th.WRTargets, "minimum targets for a WR to rank")
	pf.Int("min-te-targets", th.TETargets, "minimum targets for a TE to rank")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	for _, name := range []string{
		"db", "backend", "dsn", "limit",
		"min-qb-plays", "min-rb-rushes", "min-wr-targets", "min-te-targets",
		"log-level", "log-format",
	} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(leagueCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(mcpCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	v := viper.GetViper()
	config.SetDefaults(v, cfgFile)
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	if _, err := logging.Init(os.Stderr, c.LogLevel, c.LogFormat); err != nil {
		return err
	}
	cfg = c
	return nil
}

// openService connects to the configured store. The caller closes the DB.
func openService() (*season.Service, *storage.DB, error) {
	db, err := cfg.OpenStore()
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return season.NewService(db, cfg.Pipeline()), db, nil
}

// seasonArg parses args[i] as a season year; a missing argument means the
// latest stored season.
func seasonArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, nil
	}
	s, err := strconv.Atoi(args[i])
	if err != nil || s < 1920 {
		return 0, fmt.Errorf("invalid season %q", args[i])
	}
	return s, nil
}
