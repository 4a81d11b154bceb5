// Package cliconfig pre-seeds a flag.FlagSet from a YAML config file,
// letting command-line arguments take precedence over anything already
// parsed from the file.
package cliconfig

import (
	"flag"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// SetFlagsFromYaml goes through all registered flags in fs and, for any
// not already set from argv, attempts to set their value from rawYaml.
// It looks up each flag under REPLACE(UPPERCASE(flagname), '-', '_').
func SetFlagsFromYaml(fs *flag.FlagSet, rawYaml []byte) (err error) {
	conf := make(map[string]string)
	if err = yaml.Unmarshal(rawYaml, conf); err != nil {
		return
	}
	alreadySet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		alreadySet[f.Name] = true
	})
	fs.VisitAll(func(f *flag.Flag) {
		if alreadySet[f.Name] {
			return
		}
		tag := strings.ToUpper(f.Name)
		tag = strings.Replace(tag, "-", "_", -1)
		if tag == "" {
			return
		}
		val, ok := conf[tag]
		if !ok {
			return
		}
		if serr := fs.Set(f.Name, val); serr != nil {
			err = fmt.Errorf("invalid value %q for %s: %v", val, tag, serr)
		}
	})
	return
}
