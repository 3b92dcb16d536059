package pipingester

// Version is the version of this ingester, reported in the User-Agent
// header of every fetch.
const Version = "0.1.0"

// DefaultUserAgent identifies the ingester on the wire, following the
// PIP-Ingester-<runtime>/<version> convention.
const DefaultUserAgent = "PIP-Ingester-Go/" + Version

// SpecVersion is the PIP document format version this ingester targets.
const SpecVersion = "0.1.0"
