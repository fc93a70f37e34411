//go:build wireinject

package bootstrap

import (
	"github.com/google/wire"

	"github.com/coreward/activation-host/internal/application/dispatcher"
	"github.com/coreward/activation-host/internal/application/host"
	"github.com/coreward/activation-host/internal/application/settings"
)

// InitializeApp creates the application with all dependencies wired.
// This function is the injector that Wire will generate code for.
//
// Params:
//   - configPath: the path to the declared-services configuration file.
//
// Returns:
//   - *App: the fully wired application.
//   - error: any error during dependency construction.
func InitializeApp(configPath string) (*App, error) {
	wire.Build(
		// Ambient: logger, configuration source, persisted run stats.
		provideLogger,
		provideConfigSource,
		provideStore,

		// Domain: shared entry registry and OS-process launcher.
		provideRegistry,
		provideLauncher,

		// Application: the two supervisors, the requester registry, and
		// the notifier between them (a cyclic trio collapsed into one
		// provider — see provideSupervisors).
		provideHostedSvc,
		provideSupervisors,

		// Application: dispatch table, settings reconciliation.
		dispatcher.New,
		dispatcher.DefaultSettings,
		settings.New,

		// Infrastructure: control-plane transport and health endpoint.
		provideTransport,
		provideHealthServer,

		// Application: restart/node-disable manager (§4.9).
		provideDrainManager,

		// Application: top-level lifecycle sequencer.
		host.New,
		host.DefaultSettings,

		// Bootstrap: final App struct.
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
