// Package pkgmetric wires the Prometheus instruments exposed by the API.
//
// It keeps every instrument on a private registry so that modules register
// exactly what they own and tests never fight over the global registry.
package pkgmetric
