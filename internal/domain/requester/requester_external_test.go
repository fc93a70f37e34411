package requester_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreward/activation-host/internal/domain/requester"
)

func TestRequester_AddRemoveInstance(t *testing.T) {
	r := requester.New("r1", 4242, "node-1", "tcp://127.0.0.1:9100")

	r.AddInstance("inst-1")
	r.AddInstance("inst-2")
	assert.Equal(t, 2, r.Count())
	assert.ElementsMatch(t, []string{"inst-1", "inst-2"}, r.InstanceIDs())

	r.RemoveInstance("inst-1")
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []string{"inst-2"}, r.InstanceIDs())
}

func TestRequester_New(t *testing.T) {
	r := requester.New("r1", 4242, "node-1", "tcp://127.0.0.1:9100")

	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, 4242, r.ProcessID)
	assert.Equal(t, "node-1", r.NodeID)
	assert.Equal(t, "tcp://127.0.0.1:9100", r.CallbackAddress)
	assert.Equal(t, 0, r.Count())
}
