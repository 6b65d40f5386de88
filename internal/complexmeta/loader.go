package complexmeta

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

// File is the override file layout
type File struct {
	Complexes []Entry `yaml:"complexes"`
}

// Entry is one complex in the override file
type Entry struct {
	Name                      string `yaml:"name"`
	contracts.ComplexMetadata `yaml:",inline"`
}

var validAreaTags = map[string]bool{"59": true, "84": true}

// Load returns the built-in table merged with the YAML file at path.
// 빈 path 는 내장 테이블만 사용. 파일 항목이 같은 이름의 내장 항목을 대체한다.
func Load(path string) (*Table, error) {
	if path == "" {
		return Builtin(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read complex metadata: %w", err)
	}

	overrides, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return newTable(builtin, overrides), nil
}

// Parse decodes and validates override YAML
// SSOT 핵심: KnownFields(true)로 오타 필드 즉시 실패
func Parse(data []byte) (map[string]contracts.ComplexMetadata, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}

	out := make(map[string]contracts.ComplexMetadata, len(file.Complexes))
	for i, e := range file.Complexes {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("complexes[%d]: %w", i, err)
		}
		out[e.Name] = e.ComplexMetadata
	}
	return out, nil
}

func validate(e Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if e.Households < 0 || e.BuildYear < 0 || e.TotalFloors < 0 {
		return fmt.Errorf("%s: negative value", e.Name)
	}
	for _, tag := range e.AreaTags {
		if !validAreaTags[tag] {
			return fmt.Errorf("%s: unknown area tag %q", e.Name, tag)
		}
	}
	return nil
}
