package notify_test

import (
	"encoding/gob"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/coreward/activation-host/internal/domain/ipc"
	"github.com/coreward/activation-host/internal/domain/requester"
	"github.com/coreward/activation-host/internal/infrastructure/notify"
)

// fakeLookup resolves a fixed set of requester records.
type fakeLookup struct {
	records map[string]*requester.Requester
}

func (f *fakeLookup) Lookup(id string) (*requester.Requester, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, errNotFound{}
	}
	return rec, nil
}

type errNotFound struct{}

func (errNotFound) Error() string { return "not found" }

// fakeBroadcaster lists a fixed set of callback addresses.
type fakeBroadcaster struct {
	addrs []string
}

func (f *fakeBroadcaster) CallbackAddresses() []string { return f.addrs }

// listenOne starts a one-shot Unix listener and returns the address plus
// a channel that receives the single decoded notification it accepts.
func listenOne(t *testing.T) (string, <-chan ipc.Notification) {
	t.Helper()
	addr := filepath.Join(t.TempDir(), "requester.sock")
	ln, err := net.Listen("unix", addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	received := make(chan ipc.Notification, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		var notification ipc.Notification
		if err := gob.NewDecoder(conn).Decode(&notification); err == nil {
			received <- notification
		}
	}()
	return addr, received
}

func TestBroker_Publish_DeliversToLookedUpRequester(t *testing.T) {
	addr, received := listenOne(t)
	lookup := &fakeLookup{records: map[string]*requester.Requester{
		"req-1": requester.New("req-1", 100, "node-1", addr),
	}}
	broker := notify.New(lookup, &fakeBroadcaster{}, notify.DefaultSettings(), zerolog.Nop())

	broker.Publish(ipc.NewApplicationServiceTerminated("req-1", "parent", "child", 7))

	select {
	case got := <-received:
		require.Equal(t, "req-1", got.RequesterID)
		require.Equal(t, 7, got.ExitCode)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
	}
}

func TestBroker_Publish_UnknownRequester_DropsSilently(t *testing.T) {
	broker := notify.New(&fakeLookup{records: map[string]*requester.Requester{}}, &fakeBroadcaster{}, notify.DefaultSettings(), zerolog.Nop())

	require.NotPanics(t, func() {
		broker.Publish(ipc.NewApplicationServiceTerminated("missing", "parent", "child", 1))
	})
}

func TestBroker_Publish_BroadcastReachesEveryAddress(t *testing.T) {
	addr1, received1 := listenOne(t)
	addr2, received2 := listenOne(t)
	broadcaster := &fakeBroadcaster{addrs: []string{addr1, addr2}}
	broker := notify.New(&fakeLookup{records: map[string]*requester.Requester{}}, broadcaster, notify.DefaultSettings(), zerolog.Nop())

	broker.Publish(ipc.Notification{Kind: ipc.NotificationNodeDisabled, NodeID: "node-1"})

	for _, ch := range []<-chan ipc.Notification{received1, received2} {
		select {
		case got := <-ch:
			require.Equal(t, ipc.NotificationNodeDisabled, got.Kind)
		case <-time.After(2 * time.Second):
			t.Fatal("broadcast notification not delivered")
		}
	}
}

func TestBroker_Publish_DeliveryFailureDoesNotPanic(t *testing.T) {
	lookup := &fakeLookup{records: map[string]*requester.Requester{
		"req-1": requester.New("req-1", 100, "node-1", filepath.Join(t.TempDir(), "nobody-listening.sock")),
	}}
	broker := notify.New(lookup, &fakeBroadcaster{}, notify.DefaultSettings(), zerolog.Nop())

	require.NotPanics(t, func() {
		broker.Publish(ipc.NewApplicationServiceTerminated("req-1", "parent", "child", 1))
	})
}
