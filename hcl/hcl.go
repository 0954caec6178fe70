// Package hcl reads the optional bikeshare configuration file.
//
// The file names a data directory and overrides per-city file names:
//
//	data_dir = "data"
//
//	city "new york" {
//	  file = "nyc_2017.csv"
//	}
package hcl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/bikeshare"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

type configFile struct {
	DataDir *string     `hcl:"data_dir,optional"`
	Cities  []cityBlock `hcl:"city,block"`
}

type cityBlock struct {
	Name string `hcl:"name,label"`
	File string `hcl:"file"`
}

// LoadConfig reads the configuration file at path. A relative data_dir is
// resolved against the file's directory; when the file sets no data_dir,
// dataDir is used.
func LoadConfig(path, dataDir string) (bikeshare.Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return bikeshare.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(src, path, dataDir)
}

// Parse decodes configuration source. filename is used in diagnostics and
// as the base for a relative data_dir.
func Parse(src []byte, filename, dataDir string) (bikeshare.Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return bikeshare.Config{}, fmt.Errorf("%w: parse config %s: %s", bikeshare.ErrParse, filename, diags.Error())
	}

	var cfg configFile
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return bikeshare.Config{}, fmt.Errorf("%w: decode config %s: %s", bikeshare.ErrParse, filename, diags.Error())
	}

	overrides, diags := cityFiles(cfg.Cities)
	if diags.HasErrors() {
		return bikeshare.Config{}, fmt.Errorf("%w: config %s: %s", bikeshare.ErrValidation, filename, diags.Error())
	}

	if cfg.DataDir != nil && *cfg.DataDir != "" {
		dataDir = *cfg.DataDir
		if !filepath.IsAbs(dataDir) {
			dataDir = filepath.Join(filepath.Dir(filename), dataDir)
		}
	}
	return bikeshare.NewConfig(dataDir, overrides)
}

// cityFiles collects the city blocks, rejecting unknown and repeated cities.
func cityFiles(blocks []cityBlock) (map[bikeshare.City]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	files := make(map[bikeshare.City]string, len(blocks))
	for _, b := range blocks {
		city, err := bikeshare.ParseCity(b.Name)
		if err != nil {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown city",
				Detail:   fmt.Sprintf("City %q is not one of chicago, new york or washington.", b.Name),
			})
			continue
		}
		if _, ok := files[city]; ok {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate city block",
				Detail:   fmt.Sprintf("City %q is configured more than once.", b.Name),
			})
			continue
		}
		if b.File == "" {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Empty file name",
				Detail:   fmt.Sprintf("City %q has an empty file attribute.", b.Name),
			})
			continue
		}
		files[city] = b.File
	}
	return files, diags
}
