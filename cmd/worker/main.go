// worker is the game built as a loadable unit:
//
//	go run ./cmd/unitgen -o worker.so
//	comfywars play --unit ./worker.so
//
// A plugin may only differ from the plugins loaded before it in its main
// package; any other package it links must match the host's copy exactly.
// unitgen therefore copies internal/game into this package as game_*.go,
// and the copy exports the entry points the host looks up. It then builds
// the package from its file list rather than its import path, which gives
// every changed build its own pluginpath. A plain
// "go build -buildmode=plugin ./cmd/worker" produces a plugin that opens
// once per process and never reloads.
//
// Edit internal/game, run unitgen again, and the running game picks up the
// new code.
package main

//go:generate go run ../unitgen --src ../../internal/game --dst . --generate-only

func main() {}
