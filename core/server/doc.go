// Package server holds the HTTP trigger server configuration.
//
// The start command serves the sync feature over HTTP so runs can be triggered
// by a scheduler or webhook. This package only defines the settings (port and
// API key) and their validation; startup lives in cmd/start.go.
package server
