// Package deps checks external tool availability and resolves the runtime
// capabilities (packager backend, AV1 encoder family) exactly once per run.
package deps
