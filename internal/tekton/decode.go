package tekton

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Content types reported by ContentType.
const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Documents holds the resources found in one input.
type Documents struct {
	TaskRuns []TaskRun
	Tasks    []Task
}

// Append adds the resources of other to d, preserving order.
func (d *Documents) Append(other *Documents) {
	if other == nil {
		return
	}
	d.TaskRuns = append(d.TaskRuns, other.TaskRuns...)
	d.Tasks = append(d.Tasks, other.Tasks...)
}

// ContentType sniffs whether data is JSON. Anything else is treated as YAML.
func ContentType(data []byte) string {
	if json.Valid(bytes.TrimPrefix(data, utf8BOM)) {
		return ContentTypeJSON
	}
	return ContentTypeYAML
}

// Decode parses a JSON document or a YAML stream and collects every Task and
// TaskRun it contains. List kinds are flattened through their items; objects
// of any other kind are skipped. Empty input yields empty Documents.
func Decode(data []byte) (*Documents, error) {
	docs := &Documents{}
	data = bytes.TrimPrefix(data, utf8BOM)

	if ContentType(data) == ContentTypeJSON {
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		if err := docs.add(raw); err != nil {
			return nil, err
		}
		return docs, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for i := 0; ; i++ {
		var raw any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing YAML document %d: %w", i, err)
		}
		if err := docs.add(raw); err != nil {
			return nil, fmt.Errorf("YAML document %d: %w", i, err)
		}
	}
	return docs, nil
}

func (d *Documents) add(raw any) error {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range v {
			if err := d.add(item); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		return d.addObject(v)
	default:
		return fmt.Errorf("unexpected top-level %T", raw)
	}
}

func (d *Documents) addObject(obj map[string]any) error {
	kind, _ := obj["kind"].(string)

	switch kind {
	case KindList, KindTaskList, KindTaskRunList:
		items, _ := obj["items"].([]any)
		return d.add(items)

	case KindTaskRun:
		data, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("re-encoding %s: %w", kind, err)
		}
		var tr TaskRun
		if err := json.Unmarshal(data, &tr); err != nil {
			return fmt.Errorf("decoding %s: %w", kind, err)
		}
		if tr.Metadata.Name == "" {
			tr.Metadata.Name = GenerateID("taskrun-", string(data))
		}
		d.TaskRuns = append(d.TaskRuns, tr)

	case KindTask:
		data, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("re-encoding %s: %w", kind, err)
		}
		var t Task
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("decoding %s: %w", kind, err)
		}
		d.Tasks = append(d.Tasks, t)
	}
	return nil
}
