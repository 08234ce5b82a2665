// Package preflight bundles the checks reported by the status command and
// enforced before a run: external tool presence and directory access.
package preflight
