package version

// Version is the version of the edusign CLI. Release builds override it with
// -ldflags "-X github.com/hashicorp-forge/edusign-go/internal/version.Version=...".
var Version = "0.1.0-dev"
