package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Package is the stable response shape for a provisioning flavor.
type Package struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Memory      int64  `json:"memory"`
	Disk        int64  `json:"disk"`
	VCPUs       int    `json:"vcpus"`
	Active      bool   `json:"active"`
	Description string `json:"description,omitempty"`
}

// PAPI talks to the package catalog service.
type PAPI struct {
	client *Client
}

// NewPAPI builds the client.
func NewPAPI(baseURL string, logger *zap.Logger) *PAPI {
	return &PAPI{client: NewClient("papi", baseURL, logger)}
}

// ListPackages fetches the package catalog.
func (s *PAPI) ListPackages(ctx context.Context) ([]Package, error) {
	var packages []Package
	if err := s.client.GetJSON(ctx, "/packages", &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// GetPackage fetches one package by uuid.
func (s *PAPI) GetPackage(ctx context.Context, uuid string) (*Package, error) {
	var pkg Package
	if err := s.client.GetJSON(ctx, "/packages/"+url.PathEscape(uuid), &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// CreatePackage registers a new package and returns its canonical form.
// The create response may be partial, so the package is re-fetched by the
// uuid the catalog assigned.
func (s *PAPI) CreatePackage(ctx context.Context, spec map[string]any) (*Package, error) {
	var created map[string]any
	if err := s.client.PostJSON(ctx, "/packages", spec, &created); err != nil {
		return nil, err
	}
	uuid, ok := created["uuid"].(string)
	if ok {
		uuid = strings.TrimSpace(uuid)
	}
	if uuid == "" {
		return nil, fmt.Errorf("papi: create response missing uuid")
	}
	return s.GetPackage(ctx, uuid)
}

// UpdatePackage applies a partial update and returns the updated package.
func (s *PAPI) UpdatePackage(ctx context.Context, uuid string, changes map[string]any) (*Package, error) {
	if err := s.client.PutJSON(ctx, "/packages/"+url.PathEscape(uuid), changes, nil); err != nil {
		return nil, err
	}
	return s.GetPackage(ctx, uuid)
}
