// Package command defines executable editor commands: the Action interface
// implemented by the host's command library, the Command value assembled by
// the dispatch engine, and the closed argument and classification
// enumerations the engine matches over.
package command
