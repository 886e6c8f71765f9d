package content

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed packs/starter.yaml
var starterYAML []byte

var decodeStarter = sync.OnceValues(func() (Pack, error) {
	pack, err := DecodeYAML(starterYAML)
	if err != nil {
		return Pack{}, fmt.Errorf("decode starter pack: %w", err)
	}
	return pack, nil
})

// Starter returns the embedded starter pack. The pack is decoded once and
// shared; callers must not modify it.
func Starter() Pack {
	pack, err := decodeStarter()
	if err != nil {
		panic(err)
	}
	return pack
}

// LoadOrStarter loads the pack at path, or returns the starter pack when
// path is blank.
func LoadOrStarter(path string) (Pack, error) {
	if strings.TrimSpace(path) == "" {
		return decodeStarter()
	}
	return Load(path)
}
