package pipeline

import "sync"

// defaultInjector is built once; AdInjector is read-only after construction.
var defaultInjector = sync.OnceValue(DefaultAdInjector)

// Render converts a post body to HTML with the default parse options, ad
// fragment and ad policy. It performs no I/O and touches no mutable shared state.
func Render(body string) string {
	return defaultInjector().Inject(Parse(body, ParseOptions{}).HTML())
}
