package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const vmListPayload = `[
	{
		"uuid": "aaaaaaaa-0000-0000-0000-000000000001",
		"alias": "web-01",
		"state": "running",
		"brand": "joyent",
		"ram": 1024,
		"quota": 25,
		"vcpus": 2,
		"nics": [{"ip": "10.0.0.5", "mac": "00:00:00:00:00:01"}]
	},
	{
		"alias": "orphan-no-uuid",
		"state": "running"
	},
	{
		"uuid": "aaaaaaaa-0000-0000-0000-000000000002",
		"alias": "db-01"
	}
]`

func TestListVMsNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vms", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(vmListPayload))
	}))
	defer server.Close()

	vmapi := NewVMAPI(server.URL, zap.NewNop())
	vms, err := vmapi.ListVMs(context.Background())
	require.NoError(t, err)

	require.Len(t, vms, 2, "entries without uuid are dropped")

	assert.Equal(t, "web-01", vms[0].Alias)
	assert.Equal(t, "running", vms[0].State)
	assert.Equal(t, int64(1024), vms[0].Memory)
	assert.Equal(t, int64(25), vms[0].Disk)
	assert.Equal(t, int64(2), vms[0].VCPUs)
	assert.Equal(t, []string{"10.0.0.5"}, vms[0].IPs)

	// defaults applied for absent fields
	assert.Equal(t, "unknown", vms[1].State)
	assert.Equal(t, "unknown", vms[1].Brand)
	assert.Equal(t, int64(1), vms[1].VCPUs)
	assert.Empty(t, vms[1].IPs)
}

func TestListVMsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	vmapi := NewVMAPI(server.URL, zap.NewNop())
	_, err := vmapi.ListVMs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vmapi")
}

func TestGetVM(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vms/aaaaaaaa-0000-0000-0000-000000000001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uuid": "aaaaaaaa-0000-0000-0000-000000000001", "alias": "web-01", "state": "stopped"}`))
	}))
	defer server.Close()

	vmapi := NewVMAPI(server.URL, zap.NewNop())
	vm, err := vmapi.GetVM(context.Background(), "aaaaaaaa-0000-0000-0000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "web-01", vm.Alias)
	assert.Equal(t, "stopped", vm.State)
}
