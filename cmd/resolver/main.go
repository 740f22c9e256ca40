// Command resolver resolves Russian addresses and coordinate pairs to
// canonical address records. With arguments it answers a single query; without
// arguments it runs an interactive prompt.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/address-resolver/internal/adapter/dadata"
	httpadapter "github.com/couchcryptid/address-resolver/internal/adapter/http"
	"github.com/couchcryptid/address-resolver/internal/adapter/nominatim"
	"github.com/couchcryptid/address-resolver/internal/adapter/sqlite"
	"github.com/couchcryptid/address-resolver/internal/config"
	"github.com/couchcryptid/address-resolver/internal/domain"
	"github.com/couchcryptid/address-resolver/internal/observability"
	"github.com/couchcryptid/address-resolver/internal/pipeline"
)

const helpText = `Введите адрес на русском языке или пару координат.
Примеры:
  Екатеринбург, Родонитовая 1
  56.8225650 60.6177568
Команды: help, exit (выход)`

var configDir string

var rootCmd = &cobra.Command{
	Use:   "resolver [запрос]",
	Short: "резолвер российских адресов и координат",
	Long: `
resolver превращает свободный текст адреса или пару координат в каноническую
запись: полный адрес и координаты. Результаты кэшируются в локальной базе
SQLite; повторные запросы не обращаются к внешним сервисам.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "", "directory containing resolver.yaml")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	logger := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	var normalizer domain.Normalizer = domain.PassthroughNormalizer{}
	if cfg.NormalizationEnabled() {
		normalizer = dadata.NewClient(cfg.DaData.BaseURL, cfg.DaData.Token, cfg.DaData.Secret, cfg.DaData.Timeout, metrics, logger)
		logger.Debug("address normalization enabled", "base_url", cfg.DaData.BaseURL)
	} else {
		logger.Debug("address normalization disabled")
	}

	var store domain.AddressStore = domain.NoopStore{}
	if !cfg.Database.Disabled {
		sqliteStore, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			logger.Error("failed to open cache database", "path", cfg.Database.Path, "error", err)
			return err
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}

	geocoder := nominatim.NewClient(cfg.Nominatim.BaseURL, cfg.Nominatim.Timeout, metrics, logger)
	resolver := pipeline.NewResolver(normalizer, geocoder, store, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 {
		return resolveOnce(ctx, resolver, strings.Join(args, " "), cmd.OutOrStdout())
	}
	return runInteractive(ctx, resolver, cfg, logger, cmd.OutOrStdout())
}

// resolveOnce answers a single query and exits non-zero on any rejection.
func resolveOnce(ctx context.Context, resolver *pipeline.Resolver, query string, out io.Writer) error {
	result, err := resolver.Resolve(ctx, query)
	if err != nil {
		fmt.Fprintln(os.Stderr, pipeline.Describe(err))
		return err
	}
	return printResult(out, result)
}

// runInteractive reads queries line by line until EOF, an exit command, or a
// signal. Per-query failures print a message and keep the session alive.
func runInteractive(ctx context.Context, resolver *pipeline.Resolver, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	var srv *httpadapter.Server
	if cfg.MetricsAddr != "" {
		srv = httpadapter.NewServer(cfg.MetricsAddr, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	fmt.Fprintln(out, helpText)

	lines := make(chan string)
	scanner := bufio.NewScanner(os.Stdin)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "> ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return scanner.Err()
			}

			switch strings.ToLower(strings.TrimSpace(line)) {
			case "":
				continue
			case "exit", "выход":
				return nil
			case "help", "помощь":
				fmt.Fprintln(out, helpText)
				continue
			}

			result, err := resolver.Resolve(ctx, line)
			if err != nil {
				if ctx.Err() != nil {
					fmt.Fprintln(out)
					return nil
				}
				fmt.Fprintln(out, pipeline.Describe(err))
				continue
			}
			if err := printResult(out, result); err != nil {
				return err
			}
		}
	}
}

func printResult(out io.Writer, result pipeline.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
