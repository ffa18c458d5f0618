package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakegrid/wakegrid/pkg/graph"
	"github.com/wakegrid/wakegrid/pkg/types"
)

func TestParse_FullDocument(t *testing.T) {
	data := []byte(`
- name: "switch"
  mac: "AA:BB:CC:DD:EE:FF"
  interface: "eth0"

- name: "nas"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
  vlan: 100
  depends:
    - "switch"
  check:
    - type: http
      url: "http://nas.lan:5000/health"
      status: 200
      retry: 800 ms
      timeout: 2 minutes
    - type: port
      ip: "192.168.1.10"
      port: 22
`)

	nodes, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	// Already in activation order.
	assert.Equal(t, "switch", nodes[0].Name)
	assert.Equal(t, "nas", nodes[1].Name)

	nas := nodes[1]
	require.NotNil(t, nas.VLAN)
	assert.Equal(t, uint16(100), *nas.VLAN)
	assert.Equal(t, types.NodeStatusWaiting, nas.Status)
	require.Len(t, nas.Checks, 2)

	httpCheck := nas.Checks[0]
	assert.Equal(t, types.CheckTypeHTTP, httpCheck.Type)
	assert.Equal(t, 800*time.Millisecond, httpCheck.Retry.Std())
	assert.Equal(t, 2*time.Minute, httpCheck.Timeout.Std())
	require.NotNil(t, httpCheck.ExpectedStatus)
	assert.Equal(t, 200, *httpCheck.ExpectedStatus)
	assert.Equal(t, types.CheckStatusWaiting, httpCheck.Status)

	// Defaults applied where retry/timeout were omitted.
	portCheck := nas.Checks[1]
	assert.Equal(t, types.DefaultRetry, portCheck.Retry.Std())
	assert.Equal(t, types.DefaultTimeout, portCheck.Timeout.Std())
}

func TestParse_OrdersByDependency(t *testing.T) {
	data := []byte(`
- name: "server_a"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
  depends: ["server_b", "server_c"]
- name: "server_b"
  mac: "11:22:33:44:55:66"
  interface: "eth0"
  depends: ["server_c"]
- name: "server_c"
  mac: "22:33:44:55:66:77"
  interface: "eth0"
`)

	nodes, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "server_c", nodes[0].Name)
	assert.Equal(t, "server_b", nodes[1].Name)
	assert.Equal(t, "server_a", nodes[2].Name)
}

func TestParse_CircularDependency(t *testing.T) {
	data := []byte(`
- name: "a"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
  depends: ["b"]
- name: "b"
  mac: "11:22:33:44:55:66"
  interface: "eth0"
  depends: ["a"]
`)

	_, err := Parse(data)
	var circErr *graph.CircularDependencyError
	require.ErrorAs(t, err, &circErr)
	assert.Equal(t, "a", circErr.Name)
}

func TestParse_UndefinedDependency(t *testing.T) {
	data := []byte(`
- name: "a"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
  depends: ["ghost"]
`)

	_, err := Parse(data)
	var undefErr *graph.UndefinedDependencyError
	require.ErrorAs(t, err, &undefErr)
	assert.Equal(t, "ghost", undefErr.Name)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("not: [valid"))
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParse_DuplicateName(t *testing.T) {
	data := []byte(`
- name: "twin"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
- name: "twin"
  mac: "11:22:33:44:55:66"
  interface: "eth0"
`)

	_, err := Parse(data)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "duplicate")
}

func TestParse_InvalidMAC(t *testing.T) {
	data := []byte(`
- name: "a"
  mac: "not-a-mac"
  interface: "eth0"
`)

	_, err := Parse(data)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestValidateCheck_HTTP(t *testing.T) {
	status := 200

	// Neither criterion configured: cannot determine success.
	err := ValidateCheck(&types.HealthCheck{Type: types.CheckTypeHTTP, URL: "http://example.com"})
	var badErr *BadHealthCheckError
	require.ErrorAs(t, err, &badErr)

	// Status only.
	assert.NoError(t, ValidateCheck(&types.HealthCheck{
		Type: types.CheckTypeHTTP, URL: "http://example.com", ExpectedStatus: &status,
	}))

	// Regex only.
	c := &types.HealthCheck{Type: types.CheckTypeHTTP, URL: "http://example.com", Regex: "healthy"}
	assert.NoError(t, ValidateCheck(c))
	assert.NotNil(t, c.Pattern)

	// Both.
	assert.NoError(t, ValidateCheck(&types.HealthCheck{
		Type: types.CheckTypeHTTP, URL: "http://example.com", ExpectedStatus: &status, Regex: "healthy",
	}))
}

func TestValidateCheck_Port(t *testing.T) {
	err := ValidateCheck(&types.HealthCheck{Type: types.CheckTypePort, IP: "invalid_ip", Port: 80})
	var badErr *BadHealthCheckError
	require.ErrorAs(t, err, &badErr)

	assert.NoError(t, ValidateCheck(&types.HealthCheck{Type: types.CheckTypePort, IP: "192.168.1.1", Port: 80}))
	assert.NoError(t, ValidateCheck(&types.HealthCheck{Type: types.CheckTypePort, IP: "::1", Port: 80}))
}

func TestValidateCheck_Shell(t *testing.T) {
	code := 0

	err := ValidateCheck(&types.HealthCheck{Type: types.CheckTypeShell, Command: "curl something"})
	var badErr *BadHealthCheckError
	require.ErrorAs(t, err, &badErr)

	assert.NoError(t, ValidateCheck(&types.HealthCheck{
		Type: types.CheckTypeShell, Command: "echo Hello", ExpectedStatus: &code,
	}))
	assert.NoError(t, ValidateCheck(&types.HealthCheck{
		Type: types.CheckTypeShell, Command: "echo Hello", Regex: "Hello",
	}))
}

func TestValidateCheck_InvalidRegex(t *testing.T) {
	err := ValidateCheck(&types.HealthCheck{Type: types.CheckTypeHTTP, URL: "http://example.com", Regex: "("})
	var badErr *BadHealthCheckError
	assert.ErrorAs(t, err, &badErr)
}

func TestValidateCheck_UnknownType(t *testing.T) {
	err := ValidateCheck(&types.HealthCheck{Type: "icmp"})
	var badErr *BadHealthCheckError
	assert.ErrorAs(t, err, &badErr)
}

func TestValidate_BadCheckAbortsWholeLoad(t *testing.T) {
	nodes := []*types.Node{
		{Name: "good", MAC: "00:11:22:33:44:55", Interface: "eth0"},
		{Name: "bad", MAC: "11:22:33:44:55:66", Interface: "eth0", Checks: []*types.HealthCheck{
			{Type: types.CheckTypeHTTP, URL: "http://example.com"},
		}},
	}

	err := Validate(nodes)
	var badErr *BadHealthCheckError
	assert.ErrorAs(t, err, &badErr)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.yaml")
	data := `
- name: "gateway"
  mac: "00:11:22:33:44:55"
  interface: "eth0"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	nodes, err := Load(path)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "gateway", nodes[0].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}
