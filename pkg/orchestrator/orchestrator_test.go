package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakegrid/wakegrid/pkg/config"
	"github.com/wakegrid/wakegrid/pkg/log"
	"github.com/wakegrid/wakegrid/pkg/types"
)

func TestMain(m *testing.M) {
	log.Init(log.Config{Level: log.ErrorLevel})
	m.Run()
}

// fakeWaker records wake order instead of touching the network.
type fakeWaker struct {
	woken   []string
	failFor map[string]error
}

func (f *fakeWaker) Wake(node *types.Node) error {
	if err := f.failFor[node.Name]; err != nil {
		return err
	}
	f.woken = append(f.woken, node.Name)
	return nil
}

func load(t *testing.T, data string) []*types.Node {
	t.Helper()
	nodes, err := config.Parse([]byte(data))
	require.NoError(t, err)
	return nodes
}

func TestRun_WakesInDependencyOrder(t *testing.T) {
	nodes := load(t, `
- name: "app"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
  depends: ["db"]
- name: "db"
  mac: "11:22:33:44:55:66"
  interface: "eth0"
  depends: ["switch"]
- name: "switch"
  mac: "22:33:44:55:66:77"
  interface: "eth0"
`)

	waker := &fakeWaker{}
	orch := New(nodes, waker)
	results := orch.Run(context.Background())

	assert.Equal(t, []string{"switch", "db", "app"}, waker.woken)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, types.NodeStatusOk, r.Status)
		assert.False(t, r.Skipped)
		assert.NoError(t, r.Err)
	}
}

func TestRun_SkipsDependentsOfTimedOutNode(t *testing.T) {
	// A port that nothing listens on, so the db node times out fast.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	deadAddr := listener.Addr().(*net.TCPAddr)
	listener.Close()

	nodes := load(t, fmt.Sprintf(`
- name: "db"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
  check:
    - type: port
      ip: "127.0.0.1"
      port: %d
      retry: 50 ms
      timeout: 200 ms
- name: "app"
  mac: "11:22:33:44:55:66"
  interface: "eth0"
  depends: ["db"]
- name: "standalone"
  mac: "22:33:44:55:66:77"
  interface: "eth0"
`, deadAddr.Port))

	waker := &fakeWaker{}
	orch := New(nodes, waker)
	results := orch.Run(context.Background())

	require.Len(t, results, 3)
	byName := make(map[string]NodeResult)
	for _, r := range results {
		byName[r.Name] = r
	}

	assert.Equal(t, types.NodeStatusTimedOut, byName["db"].Status)
	assert.True(t, byName["app"].Skipped, "dependent of a timed-out node must be skipped")
	assert.NotContains(t, waker.woken, "app")

	// The independent branch still proceeds.
	assert.Equal(t, types.NodeStatusOk, byName["standalone"].Status)
	assert.Contains(t, waker.woken, "standalone")
}

func TestRun_WakeFailureBlocksDependents(t *testing.T) {
	nodes := load(t, `
- name: "gateway"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
- name: "nas"
  mac: "11:22:33:44:55:66"
  interface: "eth0"
  depends: ["gateway"]
`)

	bootErr := errors.New("interface down")
	waker := &fakeWaker{failFor: map[string]error{"gateway": bootErr}}
	orch := New(nodes, waker)
	results := orch.Run(context.Background())

	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, bootErr)
	assert.True(t, results[1].Skipped)
	assert.Empty(t, waker.woken)
}

func TestRun_StatusTransitions(t *testing.T) {
	nodes := load(t, `
- name: "only"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
`)

	orch := New(nodes, &fakeWaker{})
	require.Equal(t, types.NodeStatusWaiting, orch.State().NodeStatus(0))

	results := orch.Run(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, types.NodeStatusOk, results[0].Status)
	assert.Equal(t, types.NodeStatusOk, orch.State().NodeStatus(0))
}

func TestRun_ZeroCheckChainIsFast(t *testing.T) {
	nodes := load(t, `
- name: "a"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
- name: "b"
  mac: "11:22:33:44:55:66"
  interface: "eth0"
  depends: ["a"]
`)

	orch := New(nodes, &fakeWaker{})
	start := time.Now()
	orch.Run(context.Background())
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
