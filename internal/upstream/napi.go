package upstream

import (
	"context"
	"net/url"

	"go.uber.org/zap"
)

// Network is the stable response shape for a network allocation.
type Network struct {
	UUID             string `json:"uuid"`
	Name             string `json:"name"`
	Subnet           string `json:"subnet"`
	Netmask          string `json:"netmask"`
	Gateway          string `json:"gateway"`
	ProvisionStartIP string `json:"provision_start_ip"`
	ProvisionEndIP   string `json:"provision_end_ip"`
	VLANID           int    `json:"vlan_id"`
	Fabric           bool   `json:"fabric"`
	OwnerUUID        string `json:"owner_uuid,omitempty"`
	Description      string `json:"description,omitempty"`
}

// NAPI talks to the network allocation service.
type NAPI struct {
	client *Client
}

// NewNAPI builds the client.
func NewNAPI(baseURL string, logger *zap.Logger) *NAPI {
	return &NAPI{client: NewClient("napi", baseURL, logger)}
}

// ListNetworks fetches configured networks.
func (s *NAPI) ListNetworks(ctx context.Context) ([]Network, error) {
	var networks []Network
	if err := s.client.GetJSON(ctx, "/networks", &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

// GetNetwork fetches one network by uuid.
func (s *NAPI) GetNetwork(ctx context.Context, uuid string) (*Network, error) {
	var network Network
	if err := s.client.GetJSON(ctx, "/networks/"+url.PathEscape(uuid), &network); err != nil {
		return nil, err
	}
	return &network, nil
}
