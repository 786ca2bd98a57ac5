package version

// Name for this
const Name string = "slider"

// Version for this
var Version = "0.1.0"

// Revision for this, set at build time.
var Revision = "HEAD"
