package cryptocore

import "sync"

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns the process-wide Runtime singleton, constructing it
// with its default configuration on first use. Grounded on the teacher's
// GetPoolManager/sync.Once singleton pattern.
func Default() *Runtime {
	defaultOnce.Do(func() {
		rt, err := New(nil)
		if err != nil {
			// Default() never applies options, so Validate() can only
			// fail here if the built-in defaults themselves are broken.
			panic("cryptocore: default configuration failed validation: " + err.Error())
		}
		defaultRuntime = rt
	})
	return defaultRuntime
}
