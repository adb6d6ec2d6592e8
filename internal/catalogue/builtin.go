package catalogue

// BuiltinVersion is the version of the catalogue compiled into the binary.
const BuiltinVersion = "1.0.0"

// BuiltinName names the catalogue compiled into the binary.
const BuiltinName = "builtin"

// builtin is the package-level catalogue built from the seed data.
var builtin *Catalogue

func init() {
	builtin = New(BuiltinVersion, BuiltinName, seedSymptoms, seedContexts, seedConditions)
}

// Builtin returns the catalogue compiled into the binary. The returned value
// is shared and must be treated as read-only.
func Builtin() *Catalogue {
	return builtin
}
