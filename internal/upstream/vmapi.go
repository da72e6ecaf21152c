package upstream

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// VM is the stable response shape for a virtual machine, normalized from
// VMAPI's payload.
type VM struct {
	UUID   string           `json:"uuid"`
	Alias  string           `json:"alias"`
	State  string           `json:"state"`
	Brand  string           `json:"brand"`
	Memory int64            `json:"memory"`
	Disk   int64            `json:"disk"`
	VCPUs  int64            `json:"vcpus"`
	IPs    []string         `json:"ips"`
	Nics   []map[string]any `json:"nics,omitempty"`
}

// VMAPI talks to the VM provisioning service.
type VMAPI struct {
	client *Client
}

// NewVMAPI builds the client.
func NewVMAPI(baseURL string, logger *zap.Logger) *VMAPI {
	return &VMAPI{client: NewClient("vmapi", baseURL, logger)}
}

// ListVMs fetches and normalizes the VM inventory. Entries without a uuid or
// alias are dropped rather than surfaced half-formed.
func (s *VMAPI) ListVMs(ctx context.Context) ([]VM, error) {
	var raw []map[string]any
	if err := s.client.GetJSON(ctx, "/vms", &raw); err != nil {
		return nil, err
	}

	vms := make([]VM, 0, len(raw))
	for _, payload := range raw {
		if vm, ok := vmFromPayload(payload); ok {
			vms = append(vms, vm)
		}
	}
	return vms, nil
}

// GetVM fetches one VM by uuid.
func (s *VMAPI) GetVM(ctx context.Context, uuid string) (*VM, error) {
	var raw map[string]any
	if err := s.client.GetJSON(ctx, "/vms/"+url.PathEscape(uuid), &raw); err != nil {
		return nil, err
	}
	vm, ok := vmFromPayload(raw)
	if !ok {
		return nil, fmt.Errorf("vmapi: vm %s payload missing uuid or alias", uuid)
	}
	return &vm, nil
}

// CreateVM forwards a provisioning request unchanged and returns VMAPI's
// response (typically a job handle).
func (s *VMAPI) CreateVM(ctx context.Context, spec map[string]any) (map[string]any, error) {
	var result map[string]any
	if err := s.client.PostJSON(ctx, "/vms", spec, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteVM destroys a VM.
func (s *VMAPI) DeleteVM(ctx context.Context, uuid string) error {
	return s.client.Delete(ctx, "/vms/"+url.PathEscape(uuid))
}

// VMAction triggers a lifecycle action (start, stop, reboot).
func (s *VMAPI) VMAction(ctx context.Context, uuid, action string) (map[string]any, error) {
	var result map[string]any
	path := fmt.Sprintf("/vms/%s?action=%s", url.PathEscape(uuid), url.QueryEscape(action))
	if err := s.client.PostJSON(ctx, path, map[string]any{}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func vmFromPayload(raw map[string]any) (VM, bool) {
	uuid, ok := raw["uuid"].(string)
	if !ok || uuid == "" {
		return VM{}, false
	}
	alias, ok := raw["alias"].(string)
	if !ok || alias == "" {
		return VM{}, false
	}

	vm := VM{
		UUID:   uuid,
		Alias:  alias,
		State:  stringOr(raw, "state", "unknown"),
		Brand:  stringOr(raw, "brand", "unknown"),
		Memory: intOr(raw, "ram", 0),
		Disk:   intOr(raw, "quota", 0),
		VCPUs:  intOr(raw, "vcpus", 1),
	}

	if nics, ok := raw["nics"].([]any); ok {
		for _, n := range nics {
			nic, ok := n.(map[string]any)
			if !ok {
				continue
			}
			vm.Nics = append(vm.Nics, nic)
			if ip, ok := nic["ip"].(string); ok && ip != "" {
				vm.IPs = append(vm.IPs, ip)
			}
		}
	}
	return vm, true
}

func stringOr(raw map[string]any, key, fallback string) string {
	if v, ok := raw[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intOr(raw map[string]any, key string, fallback int64) int64 {
	if v, ok := raw[key].(float64); ok {
		return int64(v)
	}
	return fallback
}
