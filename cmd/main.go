package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/app"
	"github.com/UnknownOlympus/nimbus/internal/apperr"
	"github.com/UnknownOlympus/nimbus/internal/config"
	"github.com/UnknownOlympus/nimbus/internal/geolocation"
	"github.com/UnknownOlympus/nimbus/internal/metrics"
	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/UnknownOlympus/nimbus/internal/presenter"
	"github.com/UnknownOlympus/nimbus/internal/query"
	"github.com/UnknownOlympus/nimbus/internal/weather"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// options holds the parsed command line flags.
type options struct {
	city        []string
	imperial    bool
	secretsFile string
	timeout     time.Duration
	noColor     bool
	verbose     bool
	metricsFile string
}

// main is the entry point of the application.
func main() {
	// Ctrl+C aborts an outstanding request instead of waiting for its timeout.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
// It is the only place that turns an error into user output.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	cmd := newRootCmd(opts, stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(stderr, err, opts.noColor)
		return 1
	}

	return 0
}

func newRootCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nimbus [city words...]",
		Short: "Gets weather and temperature information for a city.",
		Long: "Gets current weather and temperature information for a city. " +
			"Without a city, nimbus locates you by your IP address.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.CliRequest{
				City:     append(append([]string{}, opts.city...), args...),
				Imperial: opts.imperial,
			}

			return run(cmd.Context(), opts, req, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.city, "city", "c", nil, "enter the city name; omit to use your location")
	flags.BoolVarP(&opts.imperial, "imperial", "i", false, "display the temperature in imperial units")
	flags.StringVar(&opts.secretsFile, "secrets", config.DefaultSecretsFile, "INI file holding the API keys")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout (default from NIMBUS_TIMEOUT or 5s)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics of this run to a textfile")

	return cmd
}

// run loads the configuration, wires the components and prints one report line.
func run(ctx context.Context, opts *options, req models.CliRequest, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.secretsFile)
	if err != nil {
		return err
	}

	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}

	env := cfg.Env
	if opts.verbose {
		env = envLocal
	}
	logger := setupLogger(env, stderr)

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	var styler presenter.Styler = presenter.NewColorStyler()
	if opts.noColor {
		styler = presenter.PlainStyler{}
	}

	var locator geolocation.Provider
	if !req.HasCity() {
		locator, err = geolocation.NewProvider(geolocation.ProviderConfig{
			Type:    geolocation.ProviderType(cfg.Geolocation.ProviderType),
			APIKey:  cfg.Geolocation.APIKey,
			URL:     cfg.Geolocation.URL,
			Timeout: cfg.Timeout,
			Logger:  logger,
		})
		if err != nil {
			return apperr.New(apperr.ErrConfiguration, "Invalid geolocation settings.", err)
		}
		logger.DebugContext(ctx, "Geolocation provider initialized", "type", cfg.Geolocation.ProviderType)
	}

	application := app.New(
		logger,
		query.NewBuilder(cfg.WeatherURL, cfg.APIKey),
		locator,
		weather.NewClient(cfg.Timeout, logger, appMetrics),
		presenter.New(styler),
		appMetrics,
	)

	line, err := application.Run(ctx, req)

	if opts.metricsFile != "" {
		if werr := metrics.WriteTextfile(opts.metricsFile, reg); werr != nil {
			logger.WarnContext(ctx, "Metrics were not written", "path", opts.metricsFile, "error", werr)
		}
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, line)

	return err
}

// printError writes the user facing message of err, in red unless colors are off.
func printError(stderr io.Writer, err error, noColor bool) {
	message := apperr.UserMessage(err)
	if noColor {
		fmt.Fprintln(stderr, message)
		return
	}

	color.New(color.FgRed).Fprintln(stderr, message)
}

// setupLogger initializes and returns a logger based on the environment provided.
// Logs go to w (stderr) so stdout only ever carries the report line.
func setupLogger(env string, w io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelError,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
