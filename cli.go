package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// newRootCmd builds the command tree. Logs go to stderr.
func newRootCmd(stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "crosslay",
		Short:         "Crosslay lays out crossword puzzles",
		Long:          `Crosslay samples words, centers an anchor word on a grid and proposes where the remaining words can cross it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newServeCmd())
	root.AddCommand(newGenerateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port, redisAddr, gcpProject, gcpRegion string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("redis-addr") {
				cfg.RedisAddr = redisAddr
			}
			if flags.Changed("gcp-project") {
				cfg.GCPProject = gcpProject
			}
			if flags.Changed("gcp-region") {
				cfg.GCPRegion = gcpRegion
			}
			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (env PORT, default 8080)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for puzzle storage (env REDIS_ADDR)")
	cmd.Flags().StringVar(&gcpProject, "gcp-project", "", "GCP project for Gemini word sampling (env GCP_PROJECT_ID)")
	cmd.Flags().StringVar(&gcpRegion, "gcp-region", "", "Vertex AI region (env GCP_REGION)")
	return cmd
}

func serve(ctx context.Context, cfg Config, logger *log.Logger) error {
	var source WordSource
	if cfg.GCPProject != "" {
		gemini, err := NewGeminiSource(ctx, cfg.GCPProject, cfg.GCPRegion)
		if err != nil {
			return fmt.Errorf("init gemini: %w", err)
		}
		source = gemini
		logger.Info("sampling words with Gemini", "project", cfg.GCPProject)
	} else {
		source = NewListSource(uint64(time.Now().UnixNano()))
		logger.Info("GCP_PROJECT_ID not set, sampling from the built-in word list")
	}

	var store Store = NewMemStore()
	if cfg.RedisAddr != "" {
		rs := NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rs.Close()
		if err := rs.Ping(ctx); err != nil {
			return fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		store = rs
		logger.Info("storing puzzles in Redis", "addr", cfg.RedisAddr)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewServer(store, source, logger),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server started", "url", "http://localhost:"+cfg.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	var (
		opts   Options
		seed   uint64
		list   string
		fill   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one puzzle and print it",
		Example: `  crosslay generate --words 8 --rows 13 --cols 13 --seed 42 --fill
  crosslay generate --list cat,car,tar --rows 5 --cols 5 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var src WordSource = NewListSource(seed)
			if list != "" {
				src = NewStaticSource(strings.Split(list, ",")...)
			}
			if !cmd.Flags().Changed("seed") && list == "" {
				src = NewListSource(uint64(time.Now().UnixNano()))
			}

			pr := newProgress(logger)
			gen, err := InitGeneration(ctx, src, opts)
			if err != nil {
				return err
			}
			logger.Debug("anchor placed", "word", gen.PlacedWords()[0].Text, "crossings", len(gen.Crossings))

			if opts.DeferAnchor {
				if err := gen.Rebuild(); err != nil {
					return err
				}
			}
			if fill {
				n := gen.Fill()
				logger.Debug("filled", "placed", n)
			}
			pr.done("puzzle generated", "placed", gen.PlacedCount, "words", gen.RequestedWords)

			return printGeneration(cmd.OutOrStdout(), gen, asJSON)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.Words, "words", "n", 8, "number of distinct words to sample")
	f.IntVar(&opts.Rows, "rows", 13, "grid height")
	f.IntVar(&opts.Cols, "cols", 13, "grid width")
	f.IntVar(&opts.MaxDraws, "max-draws", defaultMaxDraws, "top-up draws allowed while deduplicating words")
	f.BoolVar(&opts.DeferAnchor, "defer-anchor", false, "build the grid from placements after generation instead of during it")
	f.Uint64Var(&seed, "seed", 0, "seed for the built-in word list (random when unset)")
	f.StringVar(&list, "list", "", "comma-separated words to use instead of the built-in list")
	f.BoolVar(&fill, "fill", false, "keep accepting the first candidate that fits")
	f.BoolVar(&asJSON, "json", false, "print the generation as JSON")
	return cmd
}

func printGeneration(w io.Writer, gen *Generation, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(gen)
	}

	fmt.Fprint(w, gen.Grid.String())
	fmt.Fprintf(w, "\n%d/%d words placed, %d crossings\n", gen.PlacedCount, gen.RequestedWords, len(gen.Crossings))
	for _, word := range gen.Words {
		if word.Placed() {
			p := word.Placement
			fmt.Fprintf(w, "  %-10s %-6s %s\n", word.Text, p.Orientation, p.Coords[0])
		} else {
			fmt.Fprintf(w, "  %-10s -\n", word.Text)
		}
	}
	return nil
}
