package stage

// Stage names in pipeline order.
const (
	Dedupe     = "dedupe"
	Strip      = "strip"
	Overrides  = "overrides"
	Rename     = "rename"
	Art        = "art"
	Quarantine = "quarantine"
)

// Ordered lists every stage in the order the pipeline runs them.
func Ordered() []string {
	return []string{Dedupe, Strip, Overrides, Rename, Art, Quarantine}
}

// Known reports whether name is a pipeline stage.
func Known(name string) bool {
	for _, s := range Ordered() {
		if s == name {
			return true
		}
	}
	return false
}
