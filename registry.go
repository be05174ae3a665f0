package tidydraws

import (
	"fmt"
	"sort"
	"sync"
)

var (
	familyRegistry = make(map[string]Sampler)
	registryLock   sync.RWMutex
)

// RegisterFamily registers a sampler for its model family. Built-in families
// register themselves during package initialization; importing a family
// package such as tidydraws/families/nutsreg is enough to enable it.
func RegisterFamily(s Sampler) {
	registryLock.Lock()
	defer registryLock.Unlock()
	familyRegistry[s.Family()] = s
}

// samplerFor resolves the sampler for a model value. Values that do not
// implement Model, or whose family has no registered sampler, yield an
// *UnsupportedModelError naming the runtime type. Engine availability is
// deliberately not consulted here; an unsupported model must fail without
// touching any engine.
func samplerFor(model any) (Sampler, error) {
	m, ok := model.(Model)
	if !ok {
		return nil, &UnsupportedModelError{
			TypeName: fmt.Sprintf("%T", model),
			Families: registeredFamilies(),
		}
	}

	registryLock.RLock()
	s, ok := familyRegistry[m.Family()]
	registryLock.RUnlock()

	if !ok {
		return nil, &UnsupportedModelError{
			TypeName: fmt.Sprintf("%T", model),
			Families: registeredFamilies(),
		}
	}
	return s, nil
}

// registeredFamilies returns the registered family tags, sorted for stable
// error messages.
func registeredFamilies() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	families := make([]string, 0, len(familyRegistry))
	for f := range familyRegistry {
		families = append(families, f)
	}
	sort.Strings(families)
	return families
}
