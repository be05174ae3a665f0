package tidydraws

import (
	"sort"
)

// validateExtraArgs rejects pass-through arguments that use a family-native
// parameter name for which a generic option exists. nativeParams maps
// generic name to native name for the active family. The check is pure and
// runs before any prediction call, so a rejected call performs no work.
func validateExtraArgs(extra map[string]any, nativeParams map[string]string) error {
	if len(extra) == 0 || len(nativeParams) == 0 {
		return nil
	}

	// Sorted for a deterministic error when several names collide.
	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)

	generics := make([]string, 0, len(nativeParams))
	for generic := range nativeParams {
		generics = append(generics, generic)
	}
	sort.Strings(generics)

	for _, name := range names {
		for _, generic := range generics {
			if name == nativeParams[generic] {
				return &AmbiguousArgumentError{Native: name, Generic: generic}
			}
		}
	}
	return nil
}
