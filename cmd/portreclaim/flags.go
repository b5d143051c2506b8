package main

import "time"

// Flags holds CLI flag values, decoupled from cobra so run logic is testable.
type Flags struct {
	ConfigPath string
	Port       int
	GraceWait  time.Duration
	KillWait   time.Duration
	Backends   []string
	DryRun     bool
	Quiet      bool

	LogLevel  string
	LogFormat string
	NoColor   bool
	LogFile   string

	PushGateway string
}
