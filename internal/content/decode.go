package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPack indicates a document that cannot be used as a pack at all.
var ErrInvalidPack = errors.New("invalid content pack")

// Decode parses a pack from JSON or YAML, sniffing the format.
func Decode(data []byte) (Pack, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// DecodeJSON parses a JSON pack. Unknown fields are ignored.
func DecodeJSON(data []byte) (Pack, error) {
	var pack Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return Pack{}, fmt.Errorf("decode json pack: %w", err)
	}
	if err := checkStructure(pack); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

// DecodeYAML parses a YAML pack. Unknown fields are ignored.
func DecodeYAML(data []byte) (Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return Pack{}, fmt.Errorf("decode yaml pack: %w", err)
	}
	if err := checkStructure(pack); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

// Load reads and decodes the pack at path.
func Load(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("read pack %s: %w", path, err)
	}
	pack, err := Decode(data)
	if err != nil {
		return Pack{}, fmt.Errorf("load pack %s: %w", path, err)
	}
	return pack, nil
}

func checkStructure(pack Pack) error {
	if strings.TrimSpace(pack.ID) == "" {
		return fmt.Errorf("%w: pack id is required", ErrInvalidPack)
	}
	for i, table := range pack.Tables {
		if strings.TrimSpace(table.ID) == "" {
			return fmt.Errorf("%w: table %d has no id", ErrInvalidPack, i)
		}
	}
	return nil
}
