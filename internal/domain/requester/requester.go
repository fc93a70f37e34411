// Package requester provides the requester record (§3, §4.5): an in-node
// runtime peer that issues activate/deactivate requests over IPC, along
// with the set of application-service instance-ids it currently owns.
package requester

import "sync"

// Requester is one registered IPC client.
type Requester struct {
	mu sync.Mutex

	// ID is the requester's opaque identity, supplied on Register.
	ID string
	// ProcessID is the requester's own OS process id, watched so a
	// crash triggers bulk removal of everything it owns.
	ProcessID int
	// NodeID identifies the cluster node the requester runs on.
	NodeID string
	// CallbackAddress is where outbound notifications (§6.1) are sent.
	CallbackAddress string

	instanceIDs map[string]struct{}
}

// New constructs a requester record with no owned instances yet.
//
// Params:
//   - id: the requester's opaque identity.
//   - processID: the requester's OS process id.
//   - nodeID: the cluster node identifier.
//   - callbackAddress: the address outbound notifications are sent to.
//
// Returns:
//   - *Requester: a new, empty requester record.
func New(id string, processID int, nodeID, callbackAddress string) *Requester {
	return &Requester{
		ID:              id,
		ProcessID:       processID,
		NodeID:          nodeID,
		CallbackAddress: callbackAddress,
		instanceIDs:     make(map[string]struct{}),
	}
}

// AddInstance records that this requester now owns instanceID.
func (r *Requester) AddInstance(instanceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instanceIDs[instanceID] = struct{}{}
}

// RemoveInstance records that this requester no longer owns instanceID.
func (r *Requester) RemoveInstance(instanceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instanceIDs, instanceID)
}

// InstanceIDs returns a snapshot of every instance-id this requester
// currently owns.
func (r *Requester) InstanceIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.instanceIDs))
	for id := range r.instanceIDs {
		out = append(out, id)
	}
	return out
}

// Count returns how many instances this requester currently owns.
func (r *Requester) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instanceIDs)
}
