// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package analytics turns batches of persisted events into insight reports:
// per-session behavior classification and funnel position for user events,
// and per-content performance tiers for content events.
//
// Analyzers hold no mutable state and are safe for concurrent use; every
// call operates on the freshly fetched slice it is handed.
package analytics
