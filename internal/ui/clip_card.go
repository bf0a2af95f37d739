package ui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/eizo/internal/aspect"
	"github.com/ytget/eizo/internal/gesture"
	"github.com/ytget/eizo/internal/model"
	"github.com/ytget/eizo/internal/overlay"
	"github.com/ytget/eizo/internal/playback"
)

// ClipCard renders one clip of the feed: the frame, the caption overlay, the
// intent badge, the progress line and the clip info block. It owns the
// per-card overlay positioner, aspect controller and gesture arbiter.
type ClipCard struct {
	widget.BaseWidget

	view  *FeedView
	index int
	clip  model.Clip

	positioner *overlay.Positioner
	aspect     *aspect.Controller
	arbiter    *gesture.Arbiter

	playback    playback.State
	hasPlayback bool

	display    model.Vec
	offsetAnim *fyne.Animation
	cueAnim    *fyne.Animation
	cueOn      bool

	// Pointer tracking, UI thread only
	pressed    bool
	lastPos    fyne.Position
	pressTimer *time.Timer
	pinchTimer *time.Timer
	wheelScale float64

	// UI components
	background      *canvas.Rectangle
	frame           *canvas.Rectangle
	frameLabel      *canvas.Text
	statusText      *canvas.Text
	retryBtn        *widget.Button
	captionPanel    *canvas.Rectangle
	captionText     *canvas.Text
	translationText *canvas.Text
	progressTrack   *canvas.Rectangle
	progressFill    *canvas.Rectangle
	badge           *canvas.Text
	pausedText      *canvas.Text
	titleText       *canvas.Text
	channelText     *canvas.Text
	linkBtn         *widget.Button
}

// NewClipCard creates the card for clip index i of view
func NewClipCard(view *FeedView, index int, clip model.Clip) *ClipCard {
	c := &ClipCard{
		view:       view,
		index:      index,
		clip:       clip,
		wheelScale: 1,
	}
	c.ExtendBaseWidget(c)

	c.positioner = overlay.NewPositioner(view.settings)
	c.positioner.SetStateCallback(c.onOverlayState)
	c.aspect = aspect.NewController(c.onAspectChange)
	c.arbiter = gesture.NewArbiter(gesture.Targets{
		Swipe:   swipeTarget{c},
		Overlay: overlayTarget{c},
		Pinch:   pinchTarget{c},
		Scroll:  view,
		Tap:     func(gesture.Point) { view.togglePause(c.index) },
	}, view.gestureCfg)
	c.arbiter.SetClaimCallback(func(claim gesture.Claim) {
		view.logger.Debug("gesture claimed", "index", c.index, "claim", claim.String())
	})

	c.createUI()
	return c
}

// AspectMode returns the card's current aspect mode
func (c *ClipCard) AspectMode() model.AspectMode {
	return c.aspect.Mode()
}

// Display returns the rendered drag offset
func (c *ClipCard) Display() model.Vec {
	return c.display
}

func (c *ClipCard) createUI() {
	l := c.view.localization

	c.background = canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	c.frame = canvas.NewRectangle(themeColor(ColorNameFrame))

	c.frameLabel = canvas.NewText(c.clip.SourceID, theme.Color(theme.ColorNamePlaceHolder))
	c.frameLabel.Alignment = fyne.TextAlignCenter
	c.frameLabel.TextSize = StatusTextSize

	c.statusText = canvas.NewText(l.GetText(KeyLoading), theme.Color(theme.ColorNameForeground))
	c.statusText.Alignment = fyne.TextAlignCenter
	c.statusText.TextSize = StatusTextSize

	c.retryBtn = widget.NewButton(IconRetry+" "+l.GetText(KeyRetry), func() {
		c.view.retry(c.index)
	})
	c.retryBtn.Hide()

	c.captionPanel = canvas.NewRectangle(themeColor(ColorNameCaptionPanel))
	c.captionPanel.CornerRadius = CaptionPadding
	c.captionText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	c.captionText.Alignment = fyne.TextAlignCenter
	c.captionText.TextSize = CaptionTextSize
	c.captionText.TextStyle = fyne.TextStyle{Bold: true}
	c.translationText = canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
	c.translationText.Alignment = fyne.TextAlignCenter
	c.translationText.TextSize = TranslationSize

	c.progressTrack = canvas.NewRectangle(themeColor(ColorNameProgressTrack))
	c.progressFill = canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))

	c.badge = canvas.NewText("", themeColor(ColorNameLike))
	c.badge.Alignment = fyne.TextAlignCenter
	c.badge.TextSize = BadgeTextSize
	c.badge.Hide()

	c.pausedText = canvas.NewText(IconPause, theme.Color(theme.ColorNameForeground))
	c.pausedText.Alignment = fyne.TextAlignCenter
	c.pausedText.TextSize = BadgeTextSize
	c.pausedText.Hide()

	c.titleText = canvas.NewText(c.clip.GetDisplayTitle(), theme.Color(theme.ColorNameForeground))
	c.titleText.TextStyle = fyne.TextStyle{Bold: true}
	c.channelText = canvas.NewText(c.clip.Channel, theme.Color(theme.ColorNamePlaceHolder))
	c.channelText.TextSize = StatusTextSize

	c.linkBtn = widget.NewButton(IconLink, func() {
		c.view.openInBrowser(c.clip)
	})
	c.linkBtn.Importance = widget.LowImportance
}

// SetPlayback updates the card from the bridge state
func (c *ClipCard) SetPlayback(state playback.State) {
	c.playback = state
	c.hasPlayback = true
	c.Refresh()
}

// setDisplay moves the card to a rendered drag offset
func (c *ClipCard) setDisplay(v model.Vec) {
	c.display = v
	c.updateBadge()
	c.view.relayout()
}

// animateDisplay eases the rendered offset to target over d
func (c *ClipCard) animateDisplay(target model.Vec, d time.Duration) {
	if c.offsetAnim != nil {
		c.offsetAnim.Stop()
	}
	from := c.display
	c.offsetAnim = fyne.NewAnimation(d, func(f float32) {
		c.setDisplay(model.Vec{
			DX: from.DX + (target.DX-from.DX)*f,
			DY: from.DY + (target.DY-from.DY)*f,
		})
	})
	c.offsetAnim.Curve = fyne.AnimationEaseOut
	c.offsetAnim.Start()
}

// stopAnimations halts every running animation and timer of the card
func (c *ClipCard) stopAnimations() {
	if c.offsetAnim != nil {
		c.offsetAnim.Stop()
		c.offsetAnim = nil
	}
	c.stopCue()
	c.stopPressTimer()
	if c.pinchTimer != nil {
		c.pinchTimer.Stop()
		c.pinchTimer = nil
	}
}

// leaveForeground resets per-view state once the card is no longer current
func (c *ClipCard) leaveForeground() {
	c.positioner.Cancel()
	c.aspect.Reset()
}

func (c *ClipCard) onAspectChange(mode model.AspectMode) {
	c.view.bridge.SetAspect(c.index, mode)
	c.view.logger.Debug("aspect changed", "index", c.index, "mode", mode.String())
	c.Refresh()
}

func (c *ClipCard) onOverlayState(state overlay.State) {
	c.view.feed.SetLocked(state != overlay.StateIdle)
	if state == overlay.StateIdle {
		c.stopCue()
	} else {
		c.startCue()
	}
	c.Refresh()
}

// startCue pulses the caption panel while the overlay is primed or dragged
func (c *ClipCard) startCue() {
	if c.cueAnim != nil {
		return
	}
	c.cueAnim = fyne.NewAnimation(PrimingCueCycle, func(f float32) {
		on := f > 0.5
		if on != c.cueOn {
			c.cueOn = on
			c.applyCaptionColor()
		}
	})
	c.cueAnim.RepeatCount = fyne.AnimationRepeatForever
	c.cueAnim.AutoReverse = true
	c.cueAnim.Start()
}

func (c *ClipCard) stopCue() {
	if c.cueAnim != nil {
		c.cueAnim.Stop()
		c.cueAnim = nil
	}
	c.cueOn = false
	c.applyCaptionColor()
}

func (c *ClipCard) applyCaptionColor() {
	var fill color.Color = themeColor(ColorNameCaptionPanel)
	if c.cueOn || c.positioner.State() == overlay.StateDragging {
		fill = themeColor(ColorNameCaptionActive)
	}
	c.captionPanel.FillColor = fill
	c.captionPanel.Refresh()
}

// updateBadge shows the like or dislike badge while a swipe is under way
func (c *ClipCard) updateBadge() {
	slot := c.view.feed.Slot(c.index)
	switch {
	case slot.Phase.InProgress() && slot.Intent == model.IntentLike:
		c.badge.Text = IconLike
		c.badge.Color = themeColor(ColorNameLike)
		c.badge.Show()
	case slot.Phase.InProgress() && slot.Intent == model.IntentDislike:
		c.badge.Text = IconDislike
		c.badge.Color = themeColor(ColorNameDislike)
		c.badge.Show()
	default:
		c.badge.Hide()
	}
	c.badge.Refresh()
}

// refreshContent copies playback and settings state into the canvas objects
func (c *ClipCard) refreshContent() {
	l := c.view.localization
	st := c.playback

	local := c.clip.LocalTime(st.CurrentTime)
	if !c.hasPlayback {
		local = 0
	}
	c.frameLabel.Text = c.clip.SourceID + "  " + fmt.Sprintf(TimeLabelFormat, local, c.clip.Duration())

	switch {
	case st.Status == model.SurfaceFailed:
		c.statusText.Text = IconError + " " + l.GetText(KeyLoadFailed)
		c.statusText.Show()
		c.retryBtn.Show()
	case st.Status == model.SurfaceLoading || !c.hasPlayback:
		c.statusText.Text = l.GetText(KeyLoading)
		c.statusText.Show()
		c.retryBtn.Hide()
	default:
		c.statusText.Hide()
		c.retryBtn.Hide()
	}

	caption, ok := c.clip.CaptionAt(st.CurrentTime)
	if !c.hasPlayback {
		ok = false
	}
	if ok {
		c.captionText.Text = caption.Original
		c.translationText.Text = caption.Translated
		if !c.view.settings.GetShowTranslation() {
			c.translationText.Text = ""
		}
	} else {
		c.captionText.Text = ""
		c.translationText.Text = ""
	}
	if c.positioner.State() != overlay.StateIdle && c.captionText.Text == "" {
		c.captionText.Text = IconDrag + " " + l.GetText(KeyDragCaptionHint)
	}

	if st.Paused && st.Status == model.SurfaceReady {
		c.pausedText.Show()
	} else {
		c.pausedText.Hide()
	}

	c.applyCaptionColor()
	c.updateBadge()
}

// captionSize returns the caption panel size for the current texts
func (c *ClipCard) captionSize(maxWidth float32) fyne.Size {
	if c.captionText.Text == "" && c.translationText.Text == "" {
		return fyne.NewSize(0, 0)
	}
	orig := fyne.MeasureText(c.captionText.Text, c.captionText.TextSize, c.captionText.TextStyle)
	height := orig.Height + 2*CaptionPadding
	width := orig.Width
	if c.translationText.Text != "" {
		tr := fyne.MeasureText(c.translationText.Text, c.translationText.TextSize, c.translationText.TextStyle)
		height += tr.Height + CaptionPadding/2
		if tr.Width > width {
			width = tr.Width
		}
	}
	width += 2 * CaptionPadding
	if width < CaptionMinWidth {
		width = CaptionMinWidth
	}
	if width > maxWidth {
		width = maxWidth
	}
	return fyne.NewSize(width, height)
}

// layout positions every canvas object for a card of size
func (c *ClipCard) layout(size fyne.Size) {
	insets := CanvasInsets(c.view.canvas())

	c.background.Resize(size)
	c.background.Move(fyne.NewPos(0, 0))

	frameH := aspect.FrameHeight(c.aspect.Mode(), size.Width, size.Height)
	if frameH > size.Height {
		frameH = size.Height
	}
	frameTop := (size.Height - frameH) / 2
	c.frame.Resize(fyne.NewSize(size.Width, frameH))
	c.frame.Move(fyne.NewPos(0, frameTop))

	labelH := c.frameLabel.MinSize().Height
	c.frameLabel.Resize(fyne.NewSize(size.Width, labelH))
	c.frameLabel.Move(fyne.NewPos(0, frameTop+CardPadding))

	mid := size.Height / 2
	statusH := c.statusText.MinSize().Height
	c.statusText.Resize(fyne.NewSize(size.Width, statusH))
	c.statusText.Move(fyne.NewPos(0, mid-statusH))
	retry := c.retryBtn.MinSize()
	c.retryBtn.Resize(retry)
	c.retryBtn.Move(fyne.NewPos((size.Width-retry.Width)/2, mid+CardPadding/2))

	badgeH := c.badge.MinSize().Height
	c.badge.Resize(fyne.NewSize(size.Width, badgeH))
	c.badge.Move(fyne.NewPos(0, size.Height/4-badgeH/2))
	pausedH := c.pausedText.MinSize().Height
	c.pausedText.Resize(fyne.NewSize(size.Width, pausedH))
	c.pausedText.Move(fyne.NewPos(0, mid-pausedH/2))

	// Info block and progress line at the bottom, clear of the home indicator
	infoH := InfoBlockHeight
	if IsLandscape() {
		infoH = InfoBlockHeight / 2
	}
	bottom := size.Height - insets.Bottom
	c.progressTrack.Resize(fyne.NewSize(size.Width, ProgressBarHeight))
	c.progressTrack.Move(fyne.NewPos(0, bottom-ProgressBarHeight))
	progress := float32(c.playback.Progress())
	if !c.hasPlayback {
		progress = 0
	}
	c.progressFill.Resize(fyne.NewSize(size.Width*progress, ProgressBarHeight))
	c.progressFill.Move(fyne.NewPos(0, bottom-ProgressBarHeight))

	infoTop := bottom - ProgressBarHeight - infoH
	textW := size.Width - 2*CardPadding - LinkButtonSize
	titleH := c.titleText.MinSize().Height
	c.titleText.Resize(fyne.NewSize(textW, titleH))
	c.titleText.Move(fyne.NewPos(CardPadding, infoTop+CardPadding/2))
	c.channelText.Resize(fyne.NewSize(textW, c.channelText.MinSize().Height))
	c.channelText.Move(fyne.NewPos(CardPadding, infoTop+CardPadding/2+titleH))
	c.linkBtn.Resize(fyne.NewSize(LinkButtonSize, LinkButtonSize))
	c.linkBtn.Move(fyne.NewPos(size.Width-CardPadding-LinkButtonSize, infoTop+(infoH-LinkButtonSize)/2))

	// Caption overlay
	panel := c.captionSize(size.Width * CaptionWidthFactor)
	c.positioner.SetGeometry(overlay.Geometry{
		Width:       size.Width,
		Height:      size.Height,
		TopInset:    insets.Top,
		BottomInset: insets.Bottom,
	})
	c.positioner.SetOverlaySize(panel.Height)
	centerY := size.Height / 2
	if p := c.positioner.Placement(); p.Known {
		centerY = p.Y
	}
	panelTop := centerY - panel.Height/2
	c.captionPanel.Resize(panel)
	c.captionPanel.Move(fyne.NewPos((size.Width-panel.Width)/2, panelTop))
	origH := fyne.MeasureText(c.captionText.Text, c.captionText.TextSize, c.captionText.TextStyle).Height
	c.captionText.Resize(fyne.NewSize(size.Width, origH))
	c.captionText.Move(fyne.NewPos(0, panelTop+CaptionPadding))
	c.translationText.Resize(fyne.NewSize(size.Width, c.translationText.MinSize().Height))
	c.translationText.Move(fyne.NewPos(0, panelTop+CaptionPadding*1.5+origH))
	if panel.Height == 0 {
		c.captionPanel.Hide()
	} else {
		c.captionPanel.Show()
	}
}

// CreateRenderer implements fyne.Widget
func (c *ClipCard) CreateRenderer() fyne.WidgetRenderer {
	return &clipCardRenderer{
		card: c,
		objects: []fyne.CanvasObject{
			c.background,
			c.frame,
			c.frameLabel,
			c.statusText,
			c.retryBtn,
			c.captionPanel,
			c.captionText,
			c.translationText,
			c.progressTrack,
			c.progressFill,
			c.badge,
			c.pausedText,
			c.titleText,
			c.channelText,
			c.linkBtn,
		},
	}
}

type clipCardRenderer struct {
	card    *ClipCard
	objects []fyne.CanvasObject
}

func (r *clipCardRenderer) Layout(size fyne.Size) {
	r.card.layout(size)
}

func (r *clipCardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(PagerMinWidth, PagerMinHeight)
}

func (r *clipCardRenderer) Refresh() {
	r.card.refreshContent()
	r.Layout(r.card.Size())
	for _, o := range r.objects {
		o.Refresh()
	}
}

func (r *clipCardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *clipCardRenderer) Destroy() {
	r.card.stopAnimations()
}
