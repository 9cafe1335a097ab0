// Package main hosts the slidedeck CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into workflow
// actions: selecting a presentation, extracting its slide titles, asking the
// feedback service about them, and saving slide-titles.txt. An interactive
// session command drives the same controller with requests running in the
// background so the prompt stays responsive.
//
// Keep this package lean: behaviour lives in internal/workflow and its
// collaborators; commands only resolve configuration and render results.
package main
