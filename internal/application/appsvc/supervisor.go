// Package appsvc implements the application-service supervisor (§4.4):
// it owns every dynamically-requested tenant workload, keyed by
// (requester-id, app-service-id), and notifies the owning requester when
// a child exits.
package appsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/coreward/activation-host/internal/domain/entry"
	"github.com/coreward/activation-host/internal/domain/ipc"
	"github.com/coreward/activation-host/internal/domain/registry"
	"github.com/coreward/activation-host/internal/domain/shared"
)

// identitySeparator joins a requester-id and an instance-id into the
// single string an Entry uses as its FSM identity. Requester-ids are
// assigned by the runtime and are not expected to contain it.
const identitySeparator = "/"

func makeIdentity(requesterID, instanceID string) string {
	return requesterID + identitySeparator + instanceID
}

func splitIdentity(identity string) (requesterID, instanceID string, ok bool) {
	requesterID, instanceID, found := strings.Cut(identity, identitySeparator)
	return requesterID, instanceID, found
}

// Notifier delivers outbound, no-reply IPC notifications (§4.6) upstream.
type Notifier interface {
	Publish(ipc.Notification)
}

// ContainerInfoProvider is the out-of-scope container-engine-driver
// collaborator (§1) that answers GetContainerInfo queries. Left unwired
// until an infrastructure adapter registers one.
type ContainerInfoProvider interface {
	QueryContainerInfo(ctx context.Context, requesterID, instanceID, infoType string, args []string) (string, error)
}

// Supervisor owns every application-service entry.
type Supervisor struct {
	mu sync.Mutex

	reg      *registry.Registry
	launcher entry.Launcher
	notifier Notifier
	provider ContainerInfoProvider
	log      zerolog.Logger

	// children maps a container root's identity to the identities of
	// its dependent container children, so DeactivateProcess can cascade
	// (§3, §4.4).
	children map[string][]string
	// parents maps a container child's identity back to its root, used
	// to populate a terminated notification's ParentID.
	parents map[string]string
}

// New constructs an application-service supervisor bound to reg and
// launcher. notifier receives the terminated-notification stream;
// provider, if non-nil, answers GetContainerInfo.
func New(reg *registry.Registry, launcher entry.Launcher, notifier Notifier, provider ContainerInfoProvider, log zerolog.Logger) *Supervisor {
	return &Supervisor{
		reg:      reg,
		launcher: launcher,
		notifier: notifier,
		provider: provider,
		log:      log,
		children: make(map[string][]string),
		parents:  make(map[string]string),
	}
}

// ActivateProcess creates and activates a new application-service entry
// under req.RequesterID. When req.AppServiceID is empty, one is generated;
// callers that need to address the instance in later DeactivateProcess /
// TerminateProcess / GetContainerInfo calls should supply their own.
//
// Returns:
//   - string: the app-service-id in effect (req.AppServiceID, or the
//     generated one).
//   - int: the launched process id.
//   - error: shared.ErrAlreadyExists if the id is already in use under
//     this requester, or any activation error.
func (s *Supervisor) ActivateProcess(ctx context.Context, req ipc.ActivateProcessRequest, timeout time.Duration) (string, int, error) {
	instanceID := req.AppServiceID
	if instanceID == "" {
		instanceID = uuid.NewString()
	}
	identity := makeIdentity(req.RequesterID, instanceID)

	spec := specFromDescription(req.Process)
	container := containerInfoFrom(req.Container)

	e := entry.New(identity, entry.KindApplication, spec, s.launcher, s.handleEvent)
	e.SetContainer(container)

	if err := s.reg.InsertApp(req.RequesterID, instanceID, e); err != nil {
		return "", 0, err
	}

	if container.ParentIdentity != "" {
		parentIdentity := makeIdentity(req.RequesterID, container.ParentIdentity)
		s.mu.Lock()
		s.parents[identity] = parentIdentity
		s.children[parentIdentity] = append(s.children[parentIdentity], identity)
		s.mu.Unlock()
	}

	pid, err := e.Activate(ctx, timeout)
	if err != nil {
		return instanceID, 0, err
	}
	return instanceID, pid, nil
}

// DeactivateProcess stops an application-service entry, cascading to any
// container children first when the target is a container root (§4.4:
// "deactivating a root cascades").
func (s *Supervisor) DeactivateProcess(ctx context.Context, requesterID, instanceID string, graceful bool, timeout time.Duration) error {
	identity := makeIdentity(requesterID, instanceID)

	s.mu.Lock()
	childIdentities := append([]string(nil), s.children[identity]...)
	s.mu.Unlock()

	for _, childIdentity := range childIdentities {
		childRequester, childInstance, ok := splitIdentity(childIdentity)
		if !ok {
			continue
		}
		if err := s.DeactivateProcess(ctx, childRequester, childInstance, graceful, timeout); err != nil {
			s.log.Error().Str("entry", childIdentity).Err(err).Msg("container child deactivation failed")
		}
	}

	e, err := s.reg.LookupApp(requesterID, instanceID)
	if err != nil {
		return err
	}
	return e.Deactivate(ctx, graceful, timeout)
}

// TerminateProcess forces immediate termination, bypassing friendly
// signaling (§4.4, §6.1's TerminateProcess kind).
func (s *Supervisor) TerminateProcess(ctx context.Context, requesterID, instanceID string) error {
	e, err := s.reg.LookupApp(requesterID, instanceID)
	if err != nil {
		return err
	}
	return e.Abort(ctx)
}

// AbortApplicationEnvironment removes and forcibly tears down every
// app-service entry owned under applicationID. The data model (§3) scopes
// ownership by requester-id; this implementation treats an
// application-id as a requester-id, the only grouping the registry
// actually tracks.
func (s *Supervisor) AbortApplicationEnvironment(ctx context.Context, applicationID string) error {
	entries := s.reg.RemoveAllForRequester(applicationID)
	for _, e := range entries {
		if err := e.Abort(ctx); err != nil {
			s.log.Error().Str("entry", e.Identity()).Err(err).Msg("application environment abort failed")
		}
	}
	return nil
}

// CloseAll gracefully deactivates every currently registered
// application-service entry, used by the top-level host's close
// sequence (§4.8: "tear down supervisors: app-services first, then
// hosted").
func (s *Supervisor) CloseAll(ctx context.Context, timeout time.Duration) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, e := range s.reg.AppEntries() {
		e := e
		group.Go(func() error {
			if e.State() != entry.Started {
				return nil
			}
			if err := e.Deactivate(groupCtx, true, timeout); err != nil && !errors.Is(err, shared.ErrTimeout) {
				return err
			}
			return nil
		})
	}
	return group.Wait()
}

// AbortAll force-terminates every application-service entry, skipping
// friendly termination, for the top-level host's abort() path (§4.8).
func (s *Supervisor) AbortAll(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, e := range s.reg.AppEntries() {
		e := e
		group.Go(func() error {
			if err := e.Abort(groupCtx); err != nil && !errors.Is(err, shared.ErrInvalidState) {
				return err
			}
			return nil
		})
	}
	return group.Wait()
}

// GetContainerInfo answers a container metadata query via the registered
// ContainerInfoProvider collaborator.
func (s *Supervisor) GetContainerInfo(ctx context.Context, requesterID, instanceID, infoType string, args []string) (string, error) {
	if _, err := s.reg.LookupApp(requesterID, instanceID); err != nil {
		return "", err
	}
	if s.provider == nil {
		return "", fmt.Errorf("%w: no container info provider configured", shared.ErrConfigurationError)
	}
	return s.provider.QueryContainerInfo(ctx, requesterID, instanceID, infoType, args)
}

// handleEvent is installed as every application entry's publish callback.
// On an unplanned process exit it publishes an
// ApplicationServiceTerminated notification and removes the entry's
// bookkeeping; it does not reschedule (app services are re-requested by
// the runtime, never auto-restarted — §4.4 has no backoff scheduler).
func (s *Supervisor) handleEvent(ev entry.Event) {
	if ev.Trigger != entry.TriggerProcessExited {
		return
	}
	requesterID, instanceID, ok := splitIdentity(ev.Identity)
	if !ok {
		return
	}

	s.mu.Lock()
	parentIdentity, hasParent := s.parents[ev.Identity]
	delete(s.parents, ev.Identity)
	delete(s.children, ev.Identity)
	s.mu.Unlock()

	parentInstanceID := instanceID
	if hasParent {
		if _, parentInstance, ok := splitIdentity(parentIdentity); ok {
			parentInstanceID = parentInstance
		}
	}

	if s.notifier != nil {
		s.notifier.Publish(ipc.NewApplicationServiceTerminated(requesterID, parentInstanceID, instanceID, ev.ExitCode))
	}
}
