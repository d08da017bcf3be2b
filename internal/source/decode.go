package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"stackshift/internal/model"
)

// Format identifies a portfolio document encoding.
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
	FormatKeyValue
)

// Decode parses a portfolio document. A document is either a portfolio
// object with a services list, a bare service record, or (JSON only) a
// top-level array of service records. FormatAuto sniffs the payload.
func Decode(data []byte, f Format) (*model.Portfolio, error) {
	if f == FormatAuto {
		f = sniffFormat(data)
	}
	switch f {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatKeyValue:
		return parseKeyValue(data)
	default:
		return nil, fmt.Errorf("%w: unsupported document format", model.ErrInvalidInput)
	}
}

// sniffFormat guesses the encoding: JSON documents open with '{' or '[',
// the key=value form has '=' before any ':' on its first content line, and
// everything else is treated as YAML.
func sniffFormat(data []byte) Format {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		colon := strings.IndexByte(line, ':')
		if eq >= 0 && (colon < 0 || eq < colon) {
			return FormatKeyValue
		}
		return FormatYAML
	}
	return FormatYAML
}

func decodeJSON(data []byte) (*model.Portfolio, error) {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var services []model.ServiceMetrics
		if err := json.Unmarshal(data, &services); err != nil {
			return nil, fmt.Errorf("%w: parse JSON: %v", model.ErrInvalidInput, err)
		}
		return &model.Portfolio{Services: services}, nil
	}

	// A services key, even an empty one, marks a portfolio document;
	// without it the object is a bare service record.
	var probe struct {
		Services *[]json.RawMessage `json:"services"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: parse JSON: %v", model.ErrInvalidInput, err)
	}
	if probe.Services != nil {
		var p model.Portfolio
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: parse JSON portfolio: %v", model.ErrInvalidInput, err)
		}
		return &p, nil
	}

	var m model.ServiceMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse JSON service record: %v", model.ErrInvalidInput, err)
	}
	return &model.Portfolio{Name: m.Name, Services: []model.ServiceMetrics{m}}, nil
}

func decodeYAML(data []byte) (*model.Portfolio, error) {
	var probe struct {
		Services *[]yaml.Node `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: parse YAML: %v", model.ErrInvalidInput, err)
	}
	if probe.Services != nil {
		var p model.Portfolio
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: parse YAML portfolio: %v", model.ErrInvalidInput, err)
		}
		return &p, nil
	}

	var m model.ServiceMetrics
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse YAML service record: %v", model.ErrInvalidInput, err)
	}
	return &model.Portfolio{Name: m.Name, Services: []model.ServiceMetrics{m}}, nil
}
