// Hand-maintained equivalent of the injector wire would generate from
// wire.go; keep it in step with wire.go when providers change.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject

package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coreward/activation-host/internal/application/appsvc"
	"github.com/coreward/activation-host/internal/application/dispatcher"
	"github.com/coreward/activation-host/internal/application/hostedsvc"
	"github.com/coreward/activation-host/internal/application/host"
	"github.com/coreward/activation-host/internal/application/requesterreg"
	"github.com/coreward/activation-host/internal/application/settings"
	"github.com/coreward/activation-host/internal/domain/config"
	"github.com/coreward/activation-host/internal/domain/registry"
	"github.com/coreward/activation-host/internal/domain/storage"
	infraconfig "github.com/coreward/activation-host/internal/infrastructure/config/yaml"
	"github.com/coreward/activation-host/internal/infrastructure/launcher"
	"github.com/coreward/activation-host/internal/infrastructure/transport/grpc"
	"github.com/coreward/activation-host/internal/infrastructure/transport/ipcsocket"
)

// App is the fully wired application container InitializeApp returns.
type App struct {
	Config          *config.Config
	ConfigSource    *infraconfig.Loader
	Registry        *registry.Registry
	Store           storage.RunStatsStore
	HostedSvc       *hostedsvc.Supervisor
	AppSvc          *appsvc.Supervisor
	Requesters      *requesterreg.Supervisor
	Dispatcher      *dispatcher.Dispatcher
	SettingsWatcher *settings.Watcher
	Transport       *ipcsocket.Server
	HealthServer    *grpc.Server
	Host            *host.Host
	Log             zerolog.Logger

	Cleanup func()
}

// InitializeApp composes every adapter and application-layer component
// into a ready-to-run App, the way wire.go's injector declares it.
func InitializeApp(configPath string) (*App, error) {
	log := provideLogger()

	configLoader, configSource, err := provideConfigSource(configPath, log)
	if err != nil {
		return nil, err
	}
	cfg, err := configLoader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	store, err := provideStore()
	if err != nil {
		return nil, err
	}

	reg := provideRegistry()
	osLauncher := provideLauncher()

	hostedSvc := provideHostedSvc(reg, osLauncher, log, store)
	appSvc, requesters := provideSupervisors(reg, osLauncher, log)

	disp := dispatcher.New(hostedSvc, appSvc, requesters, nil, dispatcher.DefaultSettings())
	settingsWatcher := settings.New(configSource, hostedSvc, log.With().Str("component", "settings").Logger())

	transport := provideTransport(log)
	healthServer := provideHealthServer(log)
	drainMgr := provideDrainManager(log)

	h := host.New(transport, hostedSvc, appSvc, requesters, disp, drainMgr, host.DefaultSettings(), log.With().Str("component", "host").Logger())

	app := &App{
		Config:          cfg,
		ConfigSource:    configLoader,
		Registry:        reg,
		Store:           store,
		HostedSvc:       hostedSvc,
		AppSvc:          appSvc,
		Requesters:      requesters,
		Dispatcher:      disp,
		SettingsWatcher: settingsWatcher,
		Transport:       transport,
		HealthServer:    healthServer,
		Host:            h,
		Log:             log,
	}
	app.Cleanup = func() {
		healthServer.Stop()
		_ = configSource.Close()
		_ = store.Close()
	}
	return app, nil
}
