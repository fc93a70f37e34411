// Package notify provides a concrete appsvc.Notifier: a best-effort,
// fire-and-forget push of each outbound notification (§4.6, §6.1) to the
// requester(s) it addresses, over the same Unix-socket-plus-gob wire
// format ipcsocket uses for inbound requests. A requester that is not
// listening, or whose connection write fails, only costs a logged
// warning — a dropped notification never blocks or fails the event that
// produced it.
package notify

import (
	"encoding/gob"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreward/activation-host/internal/domain/ipc"
	"github.com/coreward/activation-host/internal/domain/requester"
)

// Lookup resolves a requester record by id. requesterreg.Supervisor
// satisfies this directly.
type Lookup interface {
	Lookup(requesterID string) (*requester.Requester, error)
}

// Broadcaster lists every currently registered requester's callback
// address, used for node-level notifications that address no single
// requester. requesterreg.Supervisor.CallbackAddresses satisfies this.
type Broadcaster interface {
	CallbackAddresses() []string
}

// Settings carries the §6.3 tunable governing how long a single push is
// allowed to block before being abandoned.
type Settings struct {
	DialTimeout time.Duration
}

// DefaultSettings returns a conservative dial timeout.
func DefaultSettings() Settings {
	return Settings{DialTimeout: 2 * time.Second}
}

// Broker implements appsvc.Notifier by dialing a requester's callback
// address and writing one gob-encoded ipc.Notification, then closing
// the connection. Every call is addressed independently: there is no
// persistent connection to a requester to keep alive or reconnect.
type Broker struct {
	lookup      Lookup
	broadcaster Broadcaster
	settings    Settings
	log         zerolog.Logger
}

// New constructs a Broker that resolves targeted notifications via
// lookup and broadcast (node-level) notifications via broadcaster.
func New(lookup Lookup, broadcaster Broadcaster, settings Settings, log zerolog.Logger) *Broker {
	return &Broker{lookup: lookup, broadcaster: broadcaster, settings: settings, log: log}
}

// Publish delivers notification to the requester it addresses, or to
// every registered requester if it is a broadcast (empty RequesterID).
// Publish never returns an error: a delivery failure is logged and
// otherwise swallowed, matching appsvc.Supervisor's unconditional,
// not-nil-checked call site.
func (b *Broker) Publish(notification ipc.Notification) {
	if notification.RequesterID == "" {
		for _, addr := range b.broadcaster.CallbackAddresses() {
			b.send(addr, notification)
		}
		return
	}

	rec, err := b.lookup.Lookup(notification.RequesterID)
	if err != nil {
		b.log.Warn().Str("requester", notification.RequesterID).Err(err).
			Msg("notification dropped: requester not registered")
		return
	}
	b.send(rec.CallbackAddress, notification)
}

func (b *Broker) send(addr string, notification ipc.Notification) {
	conn, err := net.DialTimeout("unix", addr, b.settings.DialTimeout)
	if err != nil {
		b.log.Warn().Str("address", addr).Err(err).Msg("notification delivery failed: dial")
		return
	}
	defer func() { _ = conn.Close() }()

	if err := gob.NewEncoder(conn).Encode(&notification); err != nil {
		b.log.Warn().Str("address", addr).Err(err).Msg("notification delivery failed: encode")
	}
}
