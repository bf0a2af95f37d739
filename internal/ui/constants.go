package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconLike    = "♥"
	IconDislike = "👎"
	IconLink    = "🔗"
	IconPause   = "⏸"
	IconRetry   = "↻"
	IconError   = "❌"
	IconDrag    = "↕"
)

// Text fragments
const (
	TimeLabelFormat = "%.1fs / %.1fs"
)

// Card layout sizing
const (
	CardPadding        float32 = 16
	ProgressBarHeight  float32 = 3
	InfoBlockHeight    float32 = 64
	CaptionPadding     float32 = 10
	CaptionTextSize    float32 = 18
	TranslationSize    float32 = 14
	BadgeTextSize      float32 = 72
	StatusTextSize     float32 = 15
	LinkButtonSize     float32 = 44
	PagerMinWidth      float32 = 240
	PagerMinHeight     float32 = 360
	CaptionMinWidth    float32 = 120
	CaptionWidthFactor float32 = 0.85
)

// Timing
const (
	ScrollSettleDuration = 200 * time.Millisecond
	WheelPageCooldown    = 350 * time.Millisecond
	PinchIdleTimeout     = 300 * time.Millisecond
	PrimingCueCycle      = 450 * time.Millisecond
)

// Wheel pinch sensitivity per scroll unit on desktop
const PinchWheelFactor = 0.01
