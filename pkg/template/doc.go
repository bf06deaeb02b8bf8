// Package template defines the prompt template record and the contracts
// used to load and parse template documents. Implementations live under
// internal/store but satisfy the interfaces declared here.
package template
