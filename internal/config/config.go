// Package config resolves input and output paths for the pipeline from
// Viper, which layers config file, environment and flag values.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default input file names, resolved relative to the data directory.
const (
	DefaultDataDir         = "data"
	DefaultReferendumFile  = "referendum.csv"
	DefaultRegionsFile     = "regions.csv"
	DefaultDepartmentsFile = "departments.csv"
	DefaultGeometryFile    = "regions.geojson"
)

// Paths holds the resolved locations of every pipeline input and output.
type Paths struct {
	Referendum  string
	Regions     string
	Departments string
	Geometry    string
	OutDir      string
}

// SetDefaults registers the default path configuration with Viper.
func SetDefaults() {
	viper.SetDefault("data.dir", DefaultDataDir)
	viper.SetDefault("data.referendum", "")
	viper.SetDefault("data.regions", "")
	viper.SetDefault("data.departments", "")
	viper.SetDefault("data.geometry", "")
	viper.SetDefault("output.dir", ".")
}

// Load resolves paths from the current Viper state. Explicit per-file
// settings win; otherwise files are expected under the data directory.
func Load() Paths {
	dir := viper.GetString("data.dir")
	return Paths{
		Referendum:  orUnder(viper.GetString("data.referendum"), dir, DefaultReferendumFile),
		Regions:     orUnder(viper.GetString("data.regions"), dir, DefaultRegionsFile),
		Departments: orUnder(viper.GetString("data.departments"), dir, DefaultDepartmentsFile),
		Geometry:    orUnder(viper.GetString("data.geometry"), dir, DefaultGeometryFile),
		OutDir:      viper.GetString("output.dir"),
	}
}

// GetString is a helper to get string values from Viper, falling back to
// the OS environment when Viper has no value.
func GetString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(key)
}

func orUnder(explicit, dir, name string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(dir, name)
}
