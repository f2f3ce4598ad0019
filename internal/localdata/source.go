package localdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vendorlink/supplier-dashboard/internal/announcement"
	"go.uber.org/zap"
)

// resourceFiles maps resource names to their files under the model
// directory. These resources are served verbatim; they are not run through
// the aggregation pipeline.
var resourceFiles = map[string]string{
	"demandForecast": "demandForecast.json",
	"announcements":  "announcements.json",
	"compliance":     "compliance.json",
	"categories":     "categories.json",
	"ppmData":        "ppmData.json",
}

// announcementsEnvelope is the shape of the announcements resource.
type announcementsEnvelope struct {
	Announcements struct {
		Items []announcement.Item `json:"items"`
	} `json:"announcements"`
}

// Source holds the local read-only JSON resources, loaded once at startup.
type Source struct {
	payloads map[string]json.RawMessage
	logger   *zap.Logger
}

// Load reads the local model resources from dir. A missing or invalid file
// is logged and skipped; the resource is simply absent.
func Load(dir string, logger *zap.Logger) *Source {
	source := &Source{
		payloads: make(map[string]json.RawMessage, len(resourceFiles)),
		logger:   logger,
	}

	for name, file := range resourceFiles {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Local resource unavailable",
				zap.String("resource", name),
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		if !json.Valid(data) {
			logger.Warn("Local resource is not valid JSON",
				zap.String("resource", name),
				zap.String("path", path))
			continue
		}
		source.payloads[name] = json.RawMessage(data)
		logger.Debug("Local resource loaded",
			zap.String("resource", name),
			zap.Int("bytes", len(data)))
	}

	return source
}

// Resource returns the raw payload of a named resource.
func (s *Source) Resource(name string) (json.RawMessage, bool) {
	payload, ok := s.payloads[name]
	return payload, ok
}

// Names returns the loaded resource names in sorted order.
func (s *Source) Names() []string {
	names := make([]string, 0, len(s.payloads))
	for name := range s.payloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Announcements decodes the announcements resource into items for the
// filter engine. An absent resource yields an empty list.
func (s *Source) Announcements() ([]announcement.Item, error) {
	payload, ok := s.payloads["announcements"]
	if !ok {
		return nil, nil
	}
	var env announcementsEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode announcements resource: %w", err)
	}
	return env.Announcements.Items, nil
}
