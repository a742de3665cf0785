package publishers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Supported publisher types.
const (
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

type configFile struct {
	Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
}

// PublisherConfig declares one outcome sink.
type PublisherConfig struct {
	ID      string               `json:"id" yaml:"id"`
	Type    string               `json:"type" yaml:"type"`
	Enabled *bool                `json:"enabled" yaml:"enabled"`
	HTTP    *HTTPPublisherConfig `json:"http" yaml:"http"`
	SQS     *SQSPublisherConfig  `json:"sqs" yaml:"sqs"`
	SNS     *SNSPublisherConfig  `json:"sns" yaml:"sns"`
	PubSub  *GCPQueueConfig      `json:"pubsub" yaml:"pubsub"`
}

// HTTPPublisherConfig posts each event as JSON to a webhook.
type HTTPPublisherConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

type SQSPublisherConfig struct {
	QueueURL  string `json:"uri" yaml:"uri"`
	AWSConfig `yaml:",inline"`
}

type SNSPublisherConfig struct {
	TopicARN  string `json:"topic_arn" yaml:"topic_arn"`
	AWSConfig `yaml:",inline"`
}

// GCPQueueConfig points at a Pub/Sub topic. CredentialsFile is optional;
// application default credentials or PUBSUB_EMULATOR_HOST apply otherwise.
type GCPQueueConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// LoadConfigs reads a publishers file and returns the enabled sinks in file
// order. Disabled entries are still validated.
func LoadConfigs(path string) ([]PublisherConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}
	file, err := decodeConfigFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(file.Publishers) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	seen := make(map[string]struct{}, len(file.Publishers))
	enabled := make([]PublisherConfig, 0, len(file.Publishers))
	for i := range file.Publishers {
		cfg := file.Publishers[i]
		cfg.normalize()
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := seen[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		seen[cfg.ID] = struct{}{}

		if cfg.Enabled != nil && !*cfg.Enabled {
			continue
		}
		enabled = append(enabled, cfg)
	}
	return enabled, nil
}

func decodeConfigFile(data []byte, ext string) (configFile, error) {
	var (
		file configFile
		err  error
	)
	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		// yaml also accepts JSON documents
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return configFile{}, fmt.Errorf("decode publishers file: %w", err)
	}
	return file, nil
}

func (c *PublisherConfig) normalize() {
	c.ID = strings.TrimSpace(c.ID)
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))

	if h := c.HTTP; h != nil {
		h.URL = strings.TrimSpace(h.URL)
		h.Method = strings.ToUpper(strings.TrimSpace(h.Method))
		if h.Method == "" {
			h.Method = httpDefaultMethod
		}
		if h.TimeoutSeconds <= 0 {
			h.TimeoutSeconds = httpDefaultTimeoutSeconds
		}
		h.Headers = trimHeaders(h.Headers)
	}
	if q := c.SQS; q != nil {
		q.QueueURL = strings.TrimSpace(q.QueueURL)
		q.AWSConfig.normalize()
	}
	if t := c.SNS; t != nil {
		t.TopicARN = strings.TrimSpace(t.TopicARN)
		t.AWSConfig.normalize()
	}
	if p := c.PubSub; p != nil {
		p.ProjectID = strings.TrimSpace(p.ProjectID)
		p.Topic = strings.TrimSpace(p.Topic)
		p.CredentialsFile = strings.TrimSpace(p.CredentialsFile)
	}
}

func (c PublisherConfig) validate() error {
	if c.ID == "" {
		return errors.New("id is required")
	}

	var missing string
	switch c.Type {
	case "":
		missing = "type"
	case TypeHTTP:
		switch {
		case c.HTTP == nil:
			missing = "http"
		case c.HTTP.URL == "":
			missing = "http.url"
		}
	case TypeSQS:
		switch {
		case c.SQS == nil:
			missing = "sqs"
		case c.SQS.QueueURL == "":
			missing = "sqs.uri"
		case c.SQS.Region == "":
			missing = "sqs.region"
		}
	case TypeSNS:
		switch {
		case c.SNS == nil:
			missing = "sns"
		case c.SNS.TopicARN == "":
			missing = "sns.topic_arn"
		case c.SNS.Region == "":
			missing = "sns.region"
		}
	case TypePubSub:
		switch {
		case c.PubSub == nil:
			missing = "pubsub"
		case c.PubSub.ProjectID == "":
			missing = "pubsub.project_id"
		case c.PubSub.Topic == "":
			missing = "pubsub.topic"
		}
	default:
		return fmt.Errorf("publisher %q: unsupported type %q", c.ID, c.Type)
	}

	if missing != "" {
		return fmt.Errorf("publisher %q: %s is required", c.ID, missing)
	}
	return nil
}

// trimHeaders drops headers whose name or value is blank.
func trimHeaders(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
