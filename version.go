package clarita

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/clarita-pm/clarita.Version=...".
var Version = "0.1.0"
