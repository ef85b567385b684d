package out

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"zenstreak/internal/modules/practice/domain"
	practiceout "zenstreak/internal/modules/practice/port/out"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// YAMLCatalog reads the practice catalog from overridePath when that file
// exists and from the built-in copy otherwise.
type YAMLCatalog struct {
	overridePath string
}

func NewYAMLCatalog(overridePath string) practiceout.CatalogSource {
	return &YAMLCatalog{overridePath: overridePath}
}

func (c *YAMLCatalog) Load(_ context.Context) (domain.Catalog, error) {
	raw := builtinCatalog
	origin := "builtin catalog"
	if c.overridePath != "" {
		b, err := os.ReadFile(c.overridePath)
		switch {
		case err == nil:
			raw = b
			origin = c.overridePath
		case !errors.Is(err, fs.ErrNotExist):
			return domain.Catalog{}, fmt.Errorf("read catalog %s: %w", c.overridePath, err)
		}
	}
	return decodeCatalog(raw, origin)
}

func decodeCatalog(raw []byte, origin string) (domain.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	catalog := domain.Catalog{}
	if err := dec.Decode(&catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode %s: %w", origin, err)
	}
	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, fmt.Errorf("validate %s: %w", origin, err)
	}
	return catalog, nil
}
