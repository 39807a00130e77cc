package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/adiazny/motiontag-days/internal/pkg/motiontag"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

type options struct {
	username string
	password string
	token    string
	url      string
	timeout  time.Duration
	verbose  bool
}

// App runs the day listing command. Tests swap the writers and the HTTP client.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	HTTP   motiontag.HTTPClient
}

func NewApp() *App {
	return &App{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes the command and reports failures on Stderr. It returns the process exit code.
func (app *App) Run(ctx context.Context, args []string) int {
	err := app.Execute(ctx, args)
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, motiontag.ErrMissingCredentials) {
		fmt.Fprintln(app.Stderr, err.Error())
	} else {
		fmt.Fprintf(app.Stderr, "Error: %v\n", err)
	}

	return ExitFailure
}

func (app *App) Execute(ctx context.Context, args []string) error {
	rootCmd := app.newRootCmd()
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

func (app *App) newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "motiontag",
		Short:         "List the days recorded in a MotionTag account",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listDays(cmd.Context(), opts)
		},
	}

	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	bindFlags(rootCmd.Flags(), opts)

	return rootCmd
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.username, "username", "u", "", "account username")
	flags.StringVarP(&opts.password, "password", "p", "", "account password")
	flags.StringVarP(&opts.token, "token", "t", "", "bearer token, skips the username/password exchange")
	flags.StringVar(&opts.url, "url", motiontag.DefaultBaseURL, "API base URL")
	flags.DurationVar(&opts.timeout, "timeout", motiontag.DefaultTimeout, "timeout for each HTTP request")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")
}

func (app *App) listDays(ctx context.Context, opts *options) error {
	log := app.newLogger(opts.verbose)

	cfg := motiontag.DefaultConfig()
	cfg.BaseURL = opts.url
	cfg.Timeout = opts.timeout

	clientOpts := []motiontag.Option{motiontag.WithLogger(log)}
	if app.HTTP != nil {
		clientOpts = append(clientOpts, motiontag.WithHTTPClient(app.HTTP))
	}

	creds := motiontag.Credentials{Username: opts.username, Password: opts.password}

	client, err := motiontag.Login(ctx, cfg, opts.token, creds, clientOpts...)
	if err != nil {
		return err
	}

	dates, err := client.GetDays(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Stdout, "Total days: %d\n", len(dates))

	return nil
}

func (app *App) newLogger(verbose bool) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(app.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logrus.NewEntry(logger).WithField("command", "motiontag")
}
