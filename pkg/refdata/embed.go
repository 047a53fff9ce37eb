package refdata

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goccy/go-yaml"
)

// dataFS embeds the canonical reference data at build time.
//
//go:embed data/*.yaml
var dataFS embed.FS

var (
	countries       = mustLoad("data/countries.yaml")
	cities          = mustLoad("data/cities.yaml")
	genders         = mustLoad("data/genders.yaml")
	maritalStatuses = mustLoad("data/marital_statuses.yaml")
)

// Countries returns the canonical country set.
func Countries() *Set { return countries }

// Cities returns the canonical city set.
func Cities() *Set { return cities }

// Genders returns the gender vocabulary.
func Genders() *Set { return genders }

// MaritalStatuses returns the marital-status vocabulary.
func MaritalStatuses() *Set { return maritalStatuses }

// setFile is the on-disk shape of an embedded reference set.
type setFile struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

func mustLoad(path string) *Set {
	data, err := fs.ReadFile(dataFS, path)
	if err != nil {
		panic(fmt.Sprintf("refdata: read %s: %v", path, err))
	}

	var file setFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		panic(fmt.Sprintf("refdata: parse %s: %v", path, err))
	}

	set, err := New(file.Name, file.Values...)
	if err != nil {
		panic(fmt.Sprintf("refdata: load %s: %v", path, err))
	}
	return set
}
