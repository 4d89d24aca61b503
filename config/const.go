package config

import "time"

const (
	// Rendered exports can be large (full-canvas PNGs), so the bridge
	// accepts bodies well beyond typical JSON payloads.
	MaxPayloadSize = 1024 * 1024 * 64 // 64 MB

	WSWriteTimeout = 10 * time.Second
	WSSendBuffer   = 64
)
