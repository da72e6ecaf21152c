package upstream

import (
	"context"
	"net/url"

	"go.uber.org/zap"
)

// Server is the stable response shape for a compute node.
type Server struct {
	UUID                 string         `json:"uuid"`
	Hostname             string         `json:"hostname"`
	Status               string         `json:"status"`
	Setup                bool           `json:"setup"`
	Datacenter           string         `json:"datacenter"`
	MemoryTotalBytes     int64          `json:"memory_total_bytes"`
	MemoryAvailableBytes int64          `json:"memory_available_bytes"`
	DiskTotalBytes       int64          `json:"disk_total_bytes"`
	DiskAvailableBytes   int64          `json:"disk_available_bytes"`
	PlatformVersion      string         `json:"platform_version"`
	Sysinfo              map[string]any `json:"sysinfo,omitempty"`
	CreatedAt            string         `json:"created_at,omitempty"`
	UpdatedAt            string         `json:"updated_at,omitempty"`
}

// CNAPI talks to the compute node inventory service.
type CNAPI struct {
	client *Client
}

// NewCNAPI builds the client.
func NewCNAPI(baseURL string, logger *zap.Logger) *CNAPI {
	return &CNAPI{client: NewClient("cnapi", baseURL, logger)}
}

// ListServers fetches the compute node inventory.
func (s *CNAPI) ListServers(ctx context.Context) ([]Server, error) {
	var servers []Server
	if err := s.client.GetJSON(ctx, "/servers", &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// GetServer fetches one compute node by uuid.
func (s *CNAPI) GetServer(ctx context.Context, uuid string) (*Server, error) {
	var server Server
	if err := s.client.GetJSON(ctx, "/servers/"+url.PathEscape(uuid), &server); err != nil {
		return nil, err
	}
	return &server, nil
}
