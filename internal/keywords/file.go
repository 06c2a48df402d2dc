package keywords

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"resumelab/internal/errors"
)

// profileFile is the on-disk YAML shape:
//
//	profiles:
//	  software engineer: [Go, Kubernetes, gRPC]
//	  default: [Leadership, Communication]
type profileFile struct {
	Profiles map[string][]string `yaml:"profiles"`
}

// LoadFile reads a YAML profile file and overlays its profiles on the
// registry. Roles present in the file shadow builtin profiles of the
// same name; builtin roles absent from the file remain available.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewIOError(
				errors.ErrCodeFileNotFound,
				fmt.Sprintf("keyword profile file not found: %s", path),
				err,
			)
		}
		return errors.NewIOError(
			errors.ErrCodeFileNotReadable,
			fmt.Sprintf("cannot read keyword profile file: %s", path),
			err,
		)
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return errors.NewIOError(
			errors.ErrCodeInvalidFormat,
			fmt.Sprintf("invalid keyword profile file: %s", path),
			err,
		)
	}

	for role, kws := range pf.Profiles {
		if len(kws) == 0 {
			return errors.NewIOError(
				errors.ErrCodeInvalidFormat,
				fmt.Sprintf("keyword profile %q has no keywords", role),
				nil,
			)
		}
	}

	r.setOverlays(pf.Profiles)
	return nil
}
