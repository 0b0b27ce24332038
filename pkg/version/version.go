package version

// Version is the application version. Overridden at build time via ldflags.
var Version = "0.2.0"
