// Package bootstrap wires the core's concrete adapters into the
// application-layer ports and drives the process lifecycle (§6.4): flag
// parsing, startup, signal-triggered reload/shutdown, and the exit-code
// convention for unrecoverable invariants.
package bootstrap

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// unhandledExceptionExitCode is the reserved terminator for an
// unrecoverable invariant violation (§6.4): a registry internal mismatch
// or lock-rank violation asserts and kills the process rather than
// continuing in a state the supervisor can no longer reason about.
const unhandledExceptionExitCode int = 3

// ErrServiceManagementUnsupported is returned by --install/--uninstall:
// this build registers with no OS service manager.
var ErrServiceManagementUnsupported error = errors.New("service (un)installation is not supported by this build")

// Flags holds the parsed §6.4 CLI surface.
type Flags struct {
	ConfigPath      string
	Service         bool
	Console         bool
	ActivateHidden  bool
	SkipFabricSetup bool
	Install         bool
	Uninstall       bool
	ShowHelp        bool
}

// ParseFlags parses args (excluding the program name) into a Flags value.
func ParseFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("activation-host", flag.ContinueOnError)

	var f Flags
	fs.StringVar(&f.ConfigPath, "config", "/etc/activation-host/config.yaml", "path to declared-services configuration file")
	fs.BoolVar(&f.Service, "service", false, "run as a system service")
	fs.BoolVar(&f.Service, "s", false, "run as a system service (shorthand)")
	fs.BoolVar(&f.Console, "console", false, "run attached to the foreground console")
	fs.BoolVar(&f.Console, "c", false, "run attached to the foreground console (shorthand)")
	fs.BoolVar(&f.ActivateHidden, "activatehidden", false, "launch hidden child windows where the platform supports it")
	fs.BoolVar(&f.SkipFabricSetup, "skipfabricsetup", false, "bypass first-time setup")
	fs.BoolVar(&f.Install, "install", false, "register as a system service")
	fs.BoolVar(&f.Install, "i", false, "register as a system service (shorthand)")
	fs.BoolVar(&f.Uninstall, "uninstall", false, "remove the registered system service")
	fs.BoolVar(&f.Uninstall, "u", false, "remove the registered system service (shorthand)")
	fs.BoolVar(&f.ShowHelp, "help", false, "show this help message")
	fs.BoolVar(&f.ShowHelp, "h", false, "show this help message (shorthand)")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// RecoverInvariant converts a panic raised by an unrecoverable invariant
// violation into the reserved unhandled-exception exit code (§6.4)
// instead of an uncontrolled crash trace. Deferred once, in main
// (cmd/activation-host/main.go), around the call to Run.
func RecoverInvariant() {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "fatal: unrecoverable invariant violation: %v\n", r)
		os.Exit(unhandledExceptionExitCode)
	}
}

// Run is the process entry point called from cmd/activation-host/main.go.
// It never returns a recoverable error: the int result is the process
// exit code (§6.4).
func Run(args []string) int {
	flags, err := ParseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if flags.ShowHelp {
		flag.CommandLine.SetOutput(os.Stdout)
		fmt.Println("usage: activation-host [flags]")
		flag.PrintDefaults()
		return 0
	}

	if flags.Install || flags.Uninstall {
		fmt.Fprintln(os.Stderr, ErrServiceManagementUnsupported)
		return 1
	}

	app, err := InitializeApp(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize: %v\n", err)
		return 1
	}
	defer app.Cleanup()

	if err := app.Run(context.Background()); err != nil {
		app.Log.Error().Err(err).Msg("fatal error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// Run opens the host, marks the declared services healthy on the health
// endpoint (already serving since provideHealthServer), and blocks until a
// termination signal closes everything down.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	if err := a.Host.Open(ctx, a.Config.Services); err != nil {
		return fmt.Errorf("open host: %w", err)
	}
	a.markServicesHealthy()

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				a.Log.Info().Msg("reload requested")
				if err := a.reload(); err != nil {
					a.Log.Error().Err(err).Msg("reload failed")
				}
			case syscall.SIGTERM, syscall.SIGINT:
				a.Log.Info().Str("signal", sig.String()).Msg("shutdown requested")
				closeCtx, closeCancel := context.WithTimeout(context.Background(), 30*time.Second)
				err := a.Host.Close(closeCtx)
				closeCancel()
				a.markServicesUnhealthy()
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// reload reparses the configuration source. Declared-service changes
// reach the running host through the settings watcher this App started
// alongside it, not through this method directly; Config is kept
// current here only so a subsequent markServicesHealthy/Unhealthy sweep
// reflects the latest declared set.
func (a *App) reload() error {
	cfg, err := a.ConfigSource.Reload()
	if err != nil {
		return fmt.Errorf("reload configuration: %w", err)
	}
	a.Config = cfg
	return nil
}

func (a *App) markServicesHealthy() {
	for _, svc := range a.Config.Services {
		a.HealthServer.SetEntryHealthy(svc.Name, true)
	}
}

func (a *App) markServicesUnhealthy() {
	for _, svc := range a.Config.Services {
		a.HealthServer.RemoveEntry(svc.Name)
	}
}
