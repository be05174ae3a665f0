package tidydraws

import (
	"fmt"
	"strings"
)

// UnsupportedModelError is returned when a value passed as a model has no
// registered family sampler. TypeName holds the runtime type of the input;
// Families lists the families that are registered.
type UnsupportedModelError struct {
	TypeName string
	Families []string
}

func (e *UnsupportedModelError) Error() string {
	if len(e.Families) == 0 {
		return fmt.Sprintf("tidydraws: no sampler registered for model type %s (no families registered; import a family package such as tidydraws/families/nutsreg)", e.TypeName)
	}
	return fmt.Sprintf("tidydraws: no sampler registered for model type %s (registered families: %s)", e.TypeName, strings.Join(e.Families, ", "))
}

// MissingDependencyError is returned when a family sampler is registered but
// the engine that does the numerical work is not.
type MissingDependencyError struct {
	Library string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("tidydraws: required engine %q is not registered; register one with the family's RegisterEngine before drawing", e.Library)
}

// AmbiguousArgumentError is returned when a pass-through argument uses a
// family-native parameter name for which a generic option exists. The generic
// spelling must be used so those options keep one meaning across families.
type AmbiguousArgumentError struct {
	Native  string
	Generic string
}

func (e *AmbiguousArgumentError) Error() string {
	return fmt.Sprintf("tidydraws: argument %q is the family-native spelling; use the generic option %q instead", e.Native, e.Generic)
}
