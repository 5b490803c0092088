package config

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidMultiplier is returned when a smoothing multiplier is below 1.
var ErrInvalidMultiplier = errors.New("multiplier must be >= 1")

// Default is the only ecs.LayerID the viewer renders on. It is untyped so the
// headless server can share this package without pulling in the renderer.
const Default = 0

// SmoothingConfig is the user-facing tuning surface of the smoothing core.
type SmoothingConfig struct {
	PreciseStop          bool `json:"preciseStop"`
	RotationMultiplier   int  `json:"rotationMultiplier"`
	CorrectionMultiplier int  `json:"correctionMultiplier"`
}

// Validate reports setup-time configuration errors.
func (c SmoothingConfig) Validate() error {
	if c.RotationMultiplier < 1 {
		return fmt.Errorf("rotation multiplier %d: %w", c.RotationMultiplier, ErrInvalidMultiplier)
	}
	if c.CorrectionMultiplier < 1 {
		return fmt.Errorf("correction multiplier %d: %w", c.CorrectionMultiplier, ErrInvalidMultiplier)
	}
	return nil
}

// ThresholdConfig holds the fixed constants of the reconciliation policy.
// Times are in seconds, distances in world units.
type ThresholdConfig struct {
	// Staleness regimes
	FrozenAfter      float64 // No extrapolation or correction beyond this
	CorrectionWindow float64 // Correction blending only runs up to this

	// Snapshot arrival
	TeleportDistance float64 // Horizontal gap that forces a teleport after a stale period

	// Error correction
	SnapError           float64 // |error| above this is snapped instead of blended
	PreciseStopVelocity float64 // |velocity| below this counts as stopped
	PreciseStopError    float64 // |error| below this is left uncorrected when stopped
}

// JumpConfig holds the constants of the local vertical motion.
type JumpConfig struct {
	LaunchVelocity float64 // JumpVelocity on trigger
	Decay          float64 // JumpVelocity lost per second
	RiseScale      float64 // Height gained per unit of JumpVelocity per second
	TerminalFall   float64 // FallVelocity eases toward this
	FallEase       float64 // Ease fraction per second toward TerminalFall
	LandEpsilon    float64 // Height at or below which the agent lands
}

// ViewerConfig contains window and drawing settings of the viewer.
type ViewerConfig struct {
	Width  int
	Height int
	TPS    int // Fixed ticks per second; smoothing dt is 1/TPS

	PixelsPerUnit float64
	AgentRadius   float32
	FacingLength  float32
	ShadowPerUnit float32 // Vertical pixel offset per unit of height

	ServerAddress string
}

// ServerConfig contains the defaults of the headless snapshot server.
type ServerConfig struct {
	Port         uint
	TickRate     int     // Simulation steps per second
	SnapshotRate int     // Snapshots per second
	Agents       int     // Simulated agents
	LossRate     float64 // Probability a snapshot is dropped
	OutageEvery  float64 // Seconds between forced outages, 0 disables
	OutageLength float64 // Seconds an outage lasts
	Seed         uint64

	ArenaWidth  int // Arena size in world units
	ArenaHeight int
	Pillars     int
	AgentSize   float64

	MinSpeed       float64
	MaxSpeed       float64
	SpeedRampTime  float32 // Seconds to ease into a new target speed
	RetargetPeriod float64 // Mean seconds between heading/speed changes
	JumpChance     float64 // Probability per second an agent jumps on its own
}

// Global configuration instances
var Smoothing SmoothingConfig
var Thresholds ThresholdConfig
var Jump JumpConfig
var Viewer ViewerConfig
var Server ServerConfig

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange      = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightBlue   = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkGray    = color.RGBA{R: 40, G: 40, B: 48, A: 255}
	Shadow      = color.RGBA{R: 0, G: 0, B: 0, A: 120}
)

// AgentColors cycles through distinct body colors for agents.
var AgentColors = []color.RGBA{
	{R: 230, G: 90, B: 90, A: 255},
	{R: 90, G: 160, B: 230, A: 255},
	{R: 240, G: 200, B: 80, A: 255},
	{R: 160, G: 110, B: 230, A: 255},
	{R: 80, G: 210, B: 190, A: 255},
	{R: 240, G: 140, B: 200, A: 255},
}

func init() {
	Smoothing = SmoothingConfig{
		PreciseStop:          false,
		RotationMultiplier:   3,
		CorrectionMultiplier: 3,
	}

	Thresholds = ThresholdConfig{
		FrozenAfter:      1.2,
		CorrectionWindow: 0.8,

		TeleportDistance: 2.0,

		SnapError:           10.0,
		PreciseStopVelocity: 0.2,
		PreciseStopError:    0.5,
	}

	Jump = JumpConfig{
		LaunchVelocity: 2.0,
		Decay:          5.0,
		RiseScale:      5.0,
		TerminalFall:   8.0,
		FallEase:       5.0,
		LandEpsilon:    0.01,
	}

	Viewer = ViewerConfig{
		Width:  800,
		Height: 600,
		TPS:    60,

		PixelsPerUnit: 18,
		AgentRadius:   7,
		FacingLength:  14,
		ShadowPerUnit: 12,

		ServerAddress: "localhost:7373",
	}

	Server = ServerConfig{
		Port:         7373,
		TickRate:     30,
		SnapshotRate: 10,
		Agents:       6,
		LossRate:     0.1,
		OutageEvery:  15,
		OutageLength: 2,
		Seed:         1,

		ArenaWidth:  40,
		ArenaHeight: 30,
		Pillars:     6,
		AgentSize:   0.8,

		MinSpeed:       0.5,
		MaxSpeed:       4.0,
		SpeedRampTime:  1.5,
		RetargetPeriod: 3.0,
		JumpChance:     0.05,
	}
}
