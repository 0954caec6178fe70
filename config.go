package bikeshare

import "fmt"

// Config maps each city to its data file. It is built once at startup and
// never modified; construct it with NewConfig.
type Config struct {
	dataDir string
	files   map[City]string
}

// DefaultFiles returns the built-in city to file name table.
func DefaultFiles() map[City]string {
	return map[City]string{
		Chicago:    "chicago.csv",
		NewYork:    "new_york_city.csv",
		Washington: "washington.csv",
	}
}

// NewConfig returns a Config reading files from dataDir. Entries in
// overrides replace the default file name for their city; an empty dataDir
// means the working directory.
func NewConfig(dataDir string, overrides map[City]string) (Config, error) {
	if dataDir == "" {
		dataDir = "."
	}
	files := DefaultFiles()
	for city, name := range overrides {
		if err := city.Validate(); err != nil {
			return Config{}, err
		}
		if name == "" {
			return Config{}, fmt.Errorf("empty file name for city %q: %w", string(city), ErrValidation)
		}
		files[city] = name
	}
	return Config{dataDir: dataDir, files: files}, nil
}

// WithDataDir returns a copy of c reading files from dir. An empty dir
// leaves c unchanged.
func (c Config) WithDataDir(dir string) Config {
	if dir != "" {
		c.dataDir = dir
	}
	return c
}

// DataDir returns the directory data files are read from.
func (c Config) DataDir() string { return c.dataDir }

// File returns the data file name for city.
func (c Config) File(city City) (string, error) {
	name, ok := c.files[city]
	if !ok {
		return "", fmt.Errorf("no data file for city %q: %w", string(city), ErrValidation)
	}
	return name, nil
}
