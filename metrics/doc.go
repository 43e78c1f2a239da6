// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes prometheus counters for the voting service.

Counters are registered on the default registry via promauto and
incremented by the HTTP handlers; the core engine stays metrics-free.
Handler returns the scrape endpoint mounted at GET /metrics.
*/
package metrics
