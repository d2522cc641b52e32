package reporting

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/datar-psa/evalreport/api"
)

// Metadata describes the application and resource the submitted metrics belong to.
// All fields are required.
type Metadata struct {
	ApplicationName string `json:"application_name" hcl:"application_name"`
	Version         string `json:"version" hcl:"version"`
	ResourceName    string `json:"resource_name" hcl:"resource_name"`
	ResourceID      string `json:"resource_id" hcl:"resource_id"`
	URL             string `json:"url" hcl:"url"`
	Provider        string `json:"provider" hcl:"provider"`
	UseCase         string `json:"use_case" hcl:"use_case"`
}

// Validate reports every missing field at once.
func (m Metadata) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"application_name", m.ApplicationName},
		{"version", m.Version},
		{"resource_name", m.ResourceName},
		{"resource_id", m.ResourceID},
		{"url", m.URL},
		{"provider", m.Provider},
		{"use_case", m.UseCase},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrInvalidMetadata, "missing %s", strings.Join(missing, ", "))
	}

	if m.Provider == "resource_id" || m.Provider == "resource_name" {
		return errors.Wrapf(ErrInvalidMetadata, "provider %q collides with a metric_data field", m.Provider)
	}
	return nil
}

// Payload is the body of a metrics submission. On the wire the scores are nested
// under metric_data using the provider name as the key:
//
//	{"metric_metadata": {...}, "metric_data": {"resource_id": "...", "resource_name": "...", "<provider>": {...}}}
type Payload struct {
	Metadata     Metadata
	ResourceID   string
	ResourceName string
	Scores       api.MetricResult
}

// NewPayload validates metadata and builds a payload holding a copy of results.
func NewPayload(metadata Metadata, resourceID, resourceName string, results api.MetricResult) (*Payload, error) {
	if err := metadata.Validate(); err != nil {
		return nil, err
	}
	return &Payload{
		Metadata:     metadata,
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Scores:       results.Clone(),
	}, nil
}

type wirePayload struct {
	Metadata Metadata                   `json:"metric_metadata"`
	Data     map[string]json.RawMessage `json:"metric_data"`
}

// MarshalJSON emits the provider-keyed wire format.
func (p Payload) MarshalJSON() ([]byte, error) {
	scores := p.Scores
	if scores == nil {
		scores = api.MetricResult{}
	}

	data := make(map[string]json.RawMessage, 3)
	for key, value := range map[string]any{
		"resource_id":       p.ResourceID,
		"resource_name":     p.ResourceName,
		p.Metadata.Provider: scores,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrapf(err, "encode metric_data.%s", key)
		}
		data[key] = raw
	}

	return json.Marshal(wirePayload{Metadata: p.Metadata, Data: data})
}

// UnmarshalJSON reads the provider-keyed wire format back into a Payload.
func (p *Payload) UnmarshalJSON(b []byte) error {
	var wire wirePayload
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	var out Payload
	out.Metadata = wire.Metadata

	if raw, ok := wire.Data["resource_id"]; ok {
		if err := json.Unmarshal(raw, &out.ResourceID); err != nil {
			return errors.Wrap(err, "decode metric_data.resource_id")
		}
	}
	if raw, ok := wire.Data["resource_name"]; ok {
		if err := json.Unmarshal(raw, &out.ResourceName); err != nil {
			return errors.Wrap(err, "decode metric_data.resource_name")
		}
	}

	raw, ok := wire.Data[wire.Metadata.Provider]
	if !ok {
		return errors.Errorf("metric_data has no scores under provider %q", wire.Metadata.Provider)
	}
	if err := json.Unmarshal(raw, &out.Scores); err != nil {
		return errors.Wrapf(err, "decode metric_data.%s", wire.Metadata.Provider)
	}

	*p = out
	return nil
}
