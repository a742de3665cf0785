package publishers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadConfigsSkipsDisabled(t *testing.T) {
	path := writeConfig(t, "publishers.yaml", `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: HTTP
    http:
      url: " https://example.com/2 "
      headers:
        X-Token: abc
        " ": dropped
`)

	cfgs, err := LoadConfigs(path)
	if err != nil {
		t.Fatalf("LoadConfigs: %v", err)
	}
	if len(cfgs) != 1 || cfgs[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", cfgs)
	}
	h := cfgs[0].HTTP
	if cfgs[0].Type != TypeHTTP || h.URL != "https://example.com/2" {
		t.Fatalf("http config not normalized: %#v", h)
	}
	if h.Method != httpDefaultMethod || h.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %#v", h)
	}
	if len(h.Headers) != 1 || h.Headers["X-Token"] != "abc" {
		t.Fatalf("headers not trimmed: %#v", h.Headers)
	}
}

func TestLoadConfigsParsesCloudSinks(t *testing.T) {
	path := writeConfig(t, "publishers.yaml", `
publishers:
  - id: queue
    type: SQS
    sqs:
      uri: " http://localhost:4566/000000000000/fetches "
      region: us-east-1
      endpoint: http://localhost:4566
      access_key_id: test
      secret_access_key: test
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:us-east-1:000000000000:fetches
      region: us-east-1
  - id: gcp
    type: pubsub
    pubsub:
      project_id: demo
      topic: fetches
`)

	cfgs, err := LoadConfigs(path)
	if err != nil {
		t.Fatalf("LoadConfigs: %v", err)
	}
	if len(cfgs) != 3 {
		t.Fatalf("expected 3 sinks, got %d", len(cfgs))
	}
	queue, topic, gcp := cfgs[0], cfgs[1], cfgs[2]
	if queue.Type != TypeSQS || queue.SQS.QueueURL != "http://localhost:4566/000000000000/fetches" || queue.SQS.Endpoint != "http://localhost:4566" {
		t.Fatalf("sqs config not normalized: %#v", queue.SQS)
	}
	if topic.SNS == nil || topic.SNS.Region != "us-east-1" {
		t.Fatalf("sns config missing: %#v", topic)
	}
	if gcp.PubSub == nil || gcp.PubSub.Topic != "fetches" {
		t.Fatalf("pubsub config missing: %#v", gcp)
	}
}

func TestLoadConfigsJSON(t *testing.T) {
	path := writeConfig(t, "publishers.json", `{"publishers":[{"id":"hook","type":"http","http":{"url":"https://example.com"}}]}`)

	cfgs, err := LoadConfigs(path)
	if err != nil {
		t.Fatalf("LoadConfigs: %v", err)
	}
	if len(cfgs) != 1 || cfgs[0].HTTP.URL != "https://example.com" {
		t.Fatalf("unexpected configs %#v", cfgs)
	}
}

func TestLoadConfigsRejects(t *testing.T) {
	tests := map[string]string{
		"empty":                "publishers: []\n",
		"duplicate":            "publishers:\n  - {id: a, type: http, http: {url: x}}\n  - {id: a, type: http, http: {url: y}}\n",
		"disabled but invalid": "publishers:\n  - {id: a, type: sqs, enabled: false, sqs: {uri: q}}\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfigs(writeConfig(t, "publishers.yaml", content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestValidateNamesMissingField(t *testing.T) {
	tests := []struct {
		cfg  PublisherConfig
		want string
	}{
		{PublisherConfig{Type: TypeHTTP}, "id is required"},
		{PublisherConfig{ID: "h", Type: TypeHTTP}, "http is required"},
		{PublisherConfig{ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{}}, "sns.topic_arn is required"},
		{PublisherConfig{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "q"}}, "sqs.region is required"},
		{PublisherConfig{ID: "g", Type: TypePubSub, PubSub: &GCPQueueConfig{ProjectID: "p"}}, "pubsub.topic is required"},
		{PublisherConfig{ID: "k", Type: "kafka"}, `unsupported type "kafka"`},
	}
	for _, tt := range tests {
		err := tt.cfg.validate()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("validate(%s) = %v, want %q", tt.cfg.ID, err, tt.want)
		}
	}
}
