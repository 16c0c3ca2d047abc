// Package services contains the letshang application services.
//
//   - ImageService stores flyer and background images and owns the display
//     URLs minted for them.
//   - EventService persists published events with simulated network latency.
//   - DraftService owns the single in-progress draft of a session and
//     decides whether publishing creates or updates a record.
//
// GoLive ties the three together into the publish flow used by the CLI.
package services
