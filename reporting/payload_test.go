package reporting

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datar-psa/evalreport/api"
)

func TestPayload_ProviderKeyCarriesScores(t *testing.T) {
	results := []api.MetricResult{
		{},
		{"Equals": 0.0, "Moderation": 0.0},
		{"AnswerRelevancyMetric": 1.0, "HallucinationMetric": 0.0},
		{"negative": -0.25, "large": 42.5, "tiny": 1e-9, "unicode ✓": 0.5},
		{"max": math.MaxFloat64},
	}

	for _, provider := range []string{"opik", "deepeval"} {
		for _, want := range results {
			md := opikMetadata()
			md.Provider = provider

			p, err := NewPayload(md, "res_1", "chat", want)
			require.NoError(t, err)

			b, err := json.Marshal(p)
			require.NoError(t, err)

			var wire struct {
				MetricData map[string]json.RawMessage `json:"metric_data"`
			}
			require.NoError(t, json.Unmarshal(b, &wire))
			assert.Len(t, wire.MetricData, 3)

			var got api.MetricResult
			require.NoError(t, json.Unmarshal(wire.MetricData[provider], &got))
			assert.Equal(t, want, got, "provider %s", provider)
		}
	}
}

func TestPayload_NilScoresEncodeAsObject(t *testing.T) {
	b, err := json.Marshal(Payload{Metadata: opikMetadata(), ResourceID: "r", ResourceName: "n"})
	require.NoError(t, err)

	var wire struct {
		MetricData map[string]json.RawMessage `json:"metric_data"`
	}
	require.NoError(t, json.Unmarshal(b, &wire))
	assert.JSONEq(t, `{}`, string(wire.MetricData["opik"]))
}

func TestPayload_RoundTrip(t *testing.T) {
	p, err := NewPayload(opikMetadata(), "res_123456", "chat-completion", api.MetricResult{"Equals": 1, "Moderation": 0.5})
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var got Payload
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, *p, got)
}

func TestPayload_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `nope`},
		{name: "missing provider scores", body: `{"metric_metadata":{"provider":"opik"},"metric_data":{"resource_id":"r","deepeval":{}}}`},
		{name: "scores not an object", body: `{"metric_metadata":{"provider":"opik"},"metric_data":{"opik":[1,2]}}`},
		{name: "resource id not a string", body: `{"metric_metadata":{"provider":"opik"},"metric_data":{"resource_id":7,"opik":{}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Payload
			assert.Error(t, json.Unmarshal([]byte(tt.body), &p))
		})
	}
}

func TestMetadata_Validate(t *testing.T) {
	assert.NoError(t, opikMetadata().Validate())

	err := Metadata{}.Validate()
	require.ErrorIs(t, err, ErrInvalidMetadata)
	assert.Contains(t, err.Error(), "application_name, version, resource_name, resource_id, url, provider, use_case")

	md := opikMetadata()
	md.Provider = "resource_name"
	assert.ErrorIs(t, md.Validate(), ErrInvalidMetadata)
}

func TestNewPayload_CopiesResults(t *testing.T) {
	results := api.MetricResult{"Equals": 1}
	p, err := NewPayload(opikMetadata(), "r", "n", results)
	require.NoError(t, err)

	results["Equals"] = 0
	results["Extra"] = 1
	assert.Equal(t, api.MetricResult{"Equals": 1}, p.Scores)
}
