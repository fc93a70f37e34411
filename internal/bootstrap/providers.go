// Package bootstrap's providers.go holds the individual constructor
// functions wire.go's injector declaration lists in its wire.Build call.
// Each one takes the narrow set of inputs it needs and returns the one
// adapter or supervisor it owns, the same shape wire expects of any
// provider; wire_gen.go is the hand-maintained stand-in for the file
// `wire` would otherwise generate from wire.go, since this build never
// invokes the wire binary.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreward/activation-host/internal/application/appsvc"
	"github.com/coreward/activation-host/internal/application/hostedsvc"
	"github.com/coreward/activation-host/internal/application/requesterreg"
	"github.com/coreward/activation-host/internal/application/restartmgr"
	"github.com/coreward/activation-host/internal/domain/registry"
	"github.com/coreward/activation-host/internal/domain/requester"
	"github.com/coreward/activation-host/internal/domain/storage"
	infraconfig "github.com/coreward/activation-host/internal/infrastructure/config/yaml"
	"github.com/coreward/activation-host/internal/infrastructure/launcher"
	"github.com/coreward/activation-host/internal/infrastructure/notify"
	boltstore "github.com/coreward/activation-host/internal/infrastructure/storage/boltdb"
	"github.com/coreward/activation-host/internal/infrastructure/transport/grpc"
	"github.com/coreward/activation-host/internal/infrastructure/transport/ipcsocket"
)

// defaultIPCSocketPath is the Unix domain socket the control-plane
// transport listens on.
const defaultIPCSocketPath string = "/var/run/activation-host/ipc.sock"

// defaultHealthAddress is the TCP address the gRPC health/introspection
// endpoint binds to.
const defaultHealthAddress string = "127.0.0.1:9090"

// provideLogger builds the human-readable console logger
// (zerolog.ConsoleWriter on stdout) every component shares.
// A per-component name is attached via With().Str("component", ...) at
// each call site rather than here, matching zerolog's sub-logger idiom.
func provideLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// provideConfigSource loads configPath once and starts watching it for
// changes, returning both the one-shot loader (used for SIGHUP-triggered
// manual reloads) and the fsnotify-backed settings.Source built on top
// of it.
func provideConfigSource(configPath string, log zerolog.Logger) (*infraconfig.Loader, *infraconfig.FileSource, error) {
	loader := infraconfig.New()

	source, err := infraconfig.NewFileSource(configPath, loader, log.With().Str("component", "config-watcher").Logger())
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := source.Watch(); err != nil {
		return nil, nil, fmt.Errorf("watch configuration: %w", err)
	}
	return loader, source, nil
}

// provideStore opens the BoltDB-backed RunStats store at its default
// path, creating the parent directory if necessary.
func provideStore() (storage.RunStatsStore, error) {
	cfg := storage.DefaultStoreConfig()
	if err := os.MkdirAll(dirOf(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create run stats directory: %w", err)
	}
	store, err := boltstore.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("open run stats store: %w", err)
	}
	return store, nil
}

// provideRegistry constructs the shared entry registry both supervisors
// operate over.
func provideRegistry() *registry.Registry {
	return registry.New()
}

// provideLauncher constructs the OS-process launcher both supervisors
// spawn through.
func provideLauncher() *launcher.OSLauncher {
	return launcher.New(launcher.NewCredentialResolver())
}

// provideHostedSvc constructs the hosted-service supervisor, restoring
// any persisted run statistics from store.
func provideHostedSvc(reg *registry.Registry, osLauncher *launcher.OSLauncher, log zerolog.Logger, store storage.RunStatsStore) *hostedsvc.Supervisor {
	return hostedsvc.NewWithStore(reg, osLauncher, hostedsvc.DefaultSettings(), log.With().Str("component", "hostedsvc").Logger(), store)
}

// requesterRegistryRef forwards notify.Lookup/notify.Broadcaster to a
// requesterreg.Supervisor bound after construction, breaking the
// requesterreg/appsvc/notify construction cycle below.
type requesterRegistryRef struct {
	sup *requesterreg.Supervisor
}

func (r *requesterRegistryRef) Lookup(id string) (*requester.Requester, error) {
	return r.sup.Lookup(id)
}

func (r *requesterRegistryRef) CallbackAddresses() []string {
	return r.sup.CallbackAddresses()
}

// provideSupervisors constructs the requester registry and the
// application-service supervisor together, since they (together with
// the notifier in between) form a three-way construction cycle:
// requesterreg needs appsvc as its Teardown, appsvc needs a Notifier,
// and the Notifier needs requesterreg to resolve callback addresses.
// requestersRef breaks the cycle: notify is handed a forwarding
// reference before the Supervisor it forwards to exists, and the
// reference is bound once requesterreg.New returns. wire treats this as
// one opaque multi-output provider, the same way it would a teacher
// provider with a conditional collaborator.
func provideSupervisors(reg *registry.Registry, osLauncher *launcher.OSLauncher, log zerolog.Logger) (*appsvc.Supervisor, *requesterreg.Supervisor) {
	requestersRef := &requesterRegistryRef{}
	notifier := notify.New(requestersRef, requestersRef, notify.DefaultSettings(), log.With().Str("component", "notify").Logger())

	appSvc := appsvc.New(reg, osLauncher, notifier, nil, log.With().Str("component", "appsvc").Logger())

	requesters := requesterreg.New(requesterreg.OSProcessWatcher{}, appSvc, requesterreg.DefaultSettings(), log.With().Str("component", "requesterreg").Logger())
	requestersRef.sup = requesters

	return appSvc, requesters
}

// provideTransport constructs the IPC control-plane listener.
func provideTransport(log zerolog.Logger) *ipcsocket.Server {
	return ipcsocket.New(defaultIPCSocketPath, log.With().Str("component", "ipcsocket").Logger())
}

// provideHealthServer constructs the gRPC health/introspection server
// and starts it serving in the background; Serve blocks, so it always
// runs off the calling goroutine.
func provideHealthServer(log zerolog.Logger) *grpc.Server {
	healthServer := grpc.NewServer()
	go func() {
		if err := healthServer.Serve(defaultHealthAddress); err != nil {
			log.Error().Err(err).Msg("health server stopped")
		}
	}()
	return healthServer
}

// standaloneClusterClient is the restartmgr.ClusterClient used when this
// node has no real cluster-layer peer to notify: RequestDisable is a
// no-op and the confirmation callback fires immediately, so a
// drain-enabled close never blocks waiting for a disable that nothing
// will ever send.
type standaloneClusterClient struct{}

func (standaloneClusterClient) RequestDisable(ctx context.Context) error { return nil }

func (standaloneClusterClient) OnConfirmation(cb func()) { cb() }

// serviceControllerLogger is the restartmgr.ServiceController used when
// this build registers with no OS service manager: reporting progress
// is just a log line rather than an SCM checkpoint call.
type serviceControllerLogger struct {
	log zerolog.Logger
}

func (s serviceControllerLogger) ReportProgress() {
	s.log.Debug().Msg("node-disable drain in progress")
}

// provideDrainManager constructs the restart/node-disable manager
// (§4.9). Its ClusterClient and ServiceController collaborators are
// out-of-scope cluster-layer/OS-service-manager integrations (§1), so
// this build gives it standalone stand-ins rather than leaving the
// Host's drain step unwired.
func provideDrainManager(log zerolog.Logger) *restartmgr.Manager {
	componentLog := log.With().Str("component", "restartmgr").Logger()
	return restartmgr.New(standaloneClusterClient{}, serviceControllerLogger{log: componentLog}, restartmgr.DefaultSettings(), componentLog)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
