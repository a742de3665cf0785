package endpoints

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"
	"github.com/samvad-hq/fetchview/internal/domain"
)

// ErrMissingValue means a lookup payload did not contain the configured value.
var ErrMissingValue = errors.New("lookup value missing from payload")

// Project shapes a validated payload for presentation. Collections that are not
// sequences project to an empty, non-sequence Projection.
func (e Endpoint) Project(payload any, param string) (domain.Projection, error) {
	if e.IsLookup() {
		return e.projectLookup(payload, param)
	}
	return e.projectCollection(payload)
}

func (e Endpoint) projectLookup(payload any, param string) (domain.Projection, error) {
	if e.Lookup == nil {
		return domain.Projection{}, fmt.Errorf("endpoint %q has no lookup layout", e.ID)
	}
	val, err := search(e.Lookup.ValuePath, payload)
	if err != nil {
		return domain.Projection{}, err
	}
	if val == nil {
		return domain.Projection{}, fmt.Errorf("%w: %s", ErrMissingValue, e.Lookup.ValuePath)
	}

	msg := strings.NewReplacer(
		"{name}", strings.TrimSpace(param),
		"{value}", formatValue(val),
	).Replace(e.Lookup.Message)
	return domain.Projection{Message: msg}, nil
}

func (e Endpoint) projectCollection(payload any) (domain.Projection, error) {
	seq, ok := payload.([]any)
	if !ok {
		return domain.Projection{}, nil
	}

	records := make([]domain.Record, 0, len(seq))
	for _, item := range seq {
		rec, err := e.record(item)
		if err != nil {
			return domain.Projection{}, err
		}
		records = append(records, rec)
	}
	return domain.Projection{Records: records, Total: len(seq), Sequence: true}, nil
}

func (e Endpoint) record(item any) (domain.Record, error) {
	if e.Layout == nil {
		return genericRecord(item), nil
	}

	var rec domain.Record
	if e.Layout.HeadingPath != "" {
		v, err := search(e.Layout.HeadingPath, item)
		if err != nil {
			return domain.Record{}, err
		}
		rec.Heading = e.Layout.HeadingLabel + formatValue(v)
	} else {
		rec.Heading = e.Layout.HeadingLabel
	}

	rec.Fields = make([]domain.Field, 0, len(e.Layout.Fields))
	for _, f := range e.Layout.Fields {
		v, err := search(f.Path, item)
		if err != nil {
			return domain.Record{}, err
		}
		rec.Fields = append(rec.Fields, domain.Field{Label: f.Label, Value: formatValue(v)})
	}
	return rec, nil
}

// genericRecord renders every top-level key in sorted order.
func genericRecord(item any) domain.Record {
	obj, ok := item.(map[string]any)
	if !ok {
		return domain.Record{Fields: []domain.Field{{Label: "value", Value: formatValue(item)}}}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := domain.Record{Fields: make([]domain.Field, 0, len(keys))}
	for _, k := range keys {
		rec.Fields = append(rec.Fields, domain.Field{Label: k, Value: formatValue(obj[k])})
	}
	return rec
}

func search(expr string, data any) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	v, err := jmespath.Search(expr, data)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	return v, nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
