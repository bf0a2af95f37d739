package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/ytget/eizo/internal/config"
	"github.com/ytget/eizo/internal/feed"
	"github.com/ytget/eizo/internal/gesture"
	"github.com/ytget/eizo/internal/model"
	"github.com/ytget/eizo/internal/playback"
)

// Scroll damping past the first and last clip
const ScrollEdgeDamping float32 = 0.3

// FeedView is the vertical pager of clip cards. It keeps cards for the
// foreground clip and its neighbours and mirrors that set into the
// playback bridge.
type FeedView struct {
	window       fyne.Window
	app          fyne.App
	feed         *feed.Controller
	bridge       *playback.Bridge
	settings     *config.Settings
	localization *Localization
	logger       *slog.Logger
	gestureCfg   gesture.Config

	cards map[int]*ClipCard
	pager *fyne.Container

	scrollOffset float32
	scrollAnim   *fyne.Animation
	lastWheel    time.Time
	ctrlHeld     bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewFeedView builds the feed UI into window and starts the playback event
// pump. Close must be called when the window goes away.
func NewFeedView(window fyne.Window, app fyne.App, f *feed.Controller, bridge *playback.Bridge, settings *config.Settings, logger *slog.Logger) *FeedView {
	if logger == nil {
		logger = slog.Default()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	v := &FeedView{
		window:       window,
		app:          app,
		feed:         f,
		bridge:       bridge,
		settings:     settings,
		localization: localization,
		logger:       logger,
		gestureCfg:   gesture.DefaultConfig(),
		cards:        make(map[int]*ClipCard),
		done:         make(chan struct{}),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	bridge.SetUpdateCallback(v.onPlaybackUpdate)
	f.OnIndexChanged(v.onIndexChanged)

	v.setupUI()
	v.syncVisible()

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	go v.pumpEvents(ctx)

	logger.Info("feed view ready", "clips", f.Len(), "start", f.Current())
	return v
}

// setupUI creates and arranges all UI components
func (v *FeedView) setupUI() {
	if !IsMobileDevice() {
		v.createMenu()
	}

	v.pager = container.New(&pagerLayout{view: v})
	v.window.SetContent(v.pager)

	v.window.Canvas().SetOnTypedKey(v.onKey)
	if dc, ok := v.window.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if isCtrl(ev.Name) {
				v.ctrlHeld = true
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if isCtrl(ev.Name) {
				v.ctrlHeld = false
			}
		})
	}
}

func isCtrl(name fyne.KeyName) bool {
	return name == desktop.KeyControlLeft || name == desktop.KeyControlRight ||
		name == desktop.KeySuperLeft || name == desktop.KeySuperRight
}

// createMenu creates the application menu
func (v *FeedView) createMenu() {
	l := v.localization

	settingsItem := fyne.NewMenuItem(l.GetText(KeySettings), v.onShowSettings)

	viewMenu := fyne.NewMenu(l.GetText(KeyView),
		fyne.NewMenuItem(l.GetText(KeyPreviousClip), func() { v.page(-1) }),
		fyne.NewMenuItem(l.GetText(KeyNextClip), func() { v.page(1) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(l.GetText(KeyAspectSquare), func() { v.setAspect(model.AspectSquare) }),
		fyne.NewMenuItem(l.GetText(KeyAspectFullBleed), func() { v.setAspect(model.AspectFullBleed) }),
		fyne.NewMenuItem(l.GetText(KeyAspectOriginal), func() { v.setAspect(model.AspectOriginal) }),
	)

	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	available := l.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langCode := code
		item := fyne.NewMenuItem(available[code], func() {
			v.onLanguageChange(langCode)
		})
		item.Checked = l.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	v.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(l.GetText(KeyFile), settingsItem),
		viewMenu,
		languageMenu,
	))
}

// onLanguageChange handles language change
func (v *FeedView) onLanguageChange(langCode string) {
	v.localization.SetLanguage(langCode)
	v.settings.SetLanguage(langCode)
	v.refreshTexts()
}

// refreshTexts rebuilds every localized text
func (v *FeedView) refreshTexts() {
	v.window.SetTitle(v.localization.GetText(KeyAppTitle))
	if !IsMobileDevice() {
		v.createMenu()
	}
	for _, idx := range v.visibleIndices() {
		old := v.cards[idx]
		card := NewClipCard(v, idx, old.clip)
		card.aspect.Set(old.aspect.Mode())
		card.display = old.display
		if old.hasPlayback {
			card.playback = old.playback
			card.hasPlayback = true
		}
		old.stopAnimations()
		v.cards[idx] = card
	}
	v.rebuildPager()
}

// onShowSettings shows the settings dialog
func (v *FeedView) onShowSettings() {
	ShowSettingsDialog(v.window, v.settings, v.localization, v.onSettingsSaved)
}

func (v *FeedView) onSettingsSaved() {
	v.localization.SetLanguage(v.settings.GetLanguage())
	v.refreshTexts()
	v.refreshOverlays(nil)
	dialog.ShowInformation(v.localization.GetText(KeySettings), v.localization.GetText(KeySettingsSaved), v.window)
}

// onKey handles desktop keyboard navigation
func (v *FeedView) onKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyDown, fyne.KeyPageDown:
		v.page(1)
	case fyne.KeyUp, fyne.KeyPageUp:
		v.page(-1)
	case fyne.KeyRight:
		v.commitCurrent(1)
	case fyne.KeyLeft:
		v.commitCurrent(-1)
	case fyne.KeySpace:
		v.togglePause(v.feed.Current())
	case fyne.Key1:
		v.setAspect(model.AspectSquare)
	case fyne.Key2:
		v.setAspect(model.AspectFullBleed)
	case fyne.Key3:
		v.setAspect(model.AspectOriginal)
	}
}

// page moves the foreground by delta clips with a settle animation
func (v *FeedView) page(delta int) {
	old := v.feed.Current()
	moved, err := v.feed.ScrollTo(old + delta)
	if err != nil {
		v.logger.Debug("page refused", "error", err)
		return
	}
	if !moved {
		return
	}
	v.animateScroll(float32(v.feed.Current()-old) * v.pageHeight())
}

// commitCurrent commits the foreground card as if swiped past the threshold
func (v *FeedView) commitCurrent(direction float32) {
	i := v.feed.Current()
	card, ok := v.cards[i]
	if !ok || !v.feed.BeginSwipe(i) {
		return
	}
	dx := direction * (v.feed.Config().CommitThreshold + 1)
	v.feed.UpdateSwipe(i, dx, 0)
	v.settleSwipe(card, v.feed.EndSwipe(i, dx, 0))
}

// settleSwipe animates a released card and finishes the swipe once the
// settle duration passes
func (v *FeedView) settleSwipe(card *ClipCard, out feed.Outcome) {
	target := feed.Slot{Offset: out.Target}.RenderOffset()
	card.animateDisplay(target, out.Settle)

	index := card.index
	time.AfterFunc(out.Settle, func() {
		fyne.Do(func() {
			v.finishSwipe(index, out)
		})
	})
}

func (v *FeedView) finishSwipe(index int, out feed.Outcome) {
	if out.Committed {
		v.logger.Info("clip swiped", "index", index, "intent", out.Intent.String())
		v.feed.FinishCommit(index)
	} else {
		v.feed.FinishSnapBack(index)
	}
	if card, ok := v.cards[index]; ok {
		if card.offsetAnim != nil {
			card.offsetAnim.Stop()
			card.offsetAnim = nil
		}
		card.setDisplay(model.Zero)
	}
}

// setAspect switches the foreground card to mode
func (v *FeedView) setAspect(mode model.AspectMode) {
	if card, ok := v.cards[v.feed.Current()]; ok {
		card.aspect.Set(mode)
	}
}

// togglePause flips pause for the slot
func (v *FeedView) togglePause(index int) {
	st, ok := v.bridge.State(index)
	if !ok {
		return
	}
	v.bridge.SetPaused(index, !st.Paused)
	v.refreshPlayback(index)
}

// refreshPlayback pushes the bridge state of index into its card
func (v *FeedView) refreshPlayback(index int) {
	card, ok := v.cards[index]
	if !ok {
		return
	}
	if st, ok := v.bridge.State(index); ok {
		card.SetPlayback(st)
	}
}

// retry reloads a failed slot
func (v *FeedView) retry(index int) {
	if st, ok := v.bridge.State(index); ok {
		v.bridge.Load(st.Handle)
	}
}

// openInBrowser opens the clip's source page
func (v *FeedView) openInBrowser(clip model.Clip) {
	u, err := url.Parse(clip.WatchURL())
	if err == nil {
		err = v.app.OpenURL(u)
	}
	if err != nil {
		v.logger.Error("open link", "source_id", clip.SourceID, "error", err)
		dialog.ShowError(fmt.Errorf("%s: %w", v.localization.GetText(KeyErrorOpeningLink), err), v.window)
	}
}

// onOverlayRatioSaved re-derives every other card's caption from the new
// global ratio
func (v *FeedView) onOverlayRatioSaved(from *ClipCard, ratio float64) {
	v.logger.Debug("caption position saved", "ratio", ratio)
	v.refreshOverlays(from)
}

func (v *FeedView) refreshOverlays(skip *ClipCard) {
	for _, card := range v.cards {
		if card == skip {
			continue
		}
		card.positioner.Refresh()
		card.Refresh()
	}
}

// BeginScroll implements gesture.ScrollTarget
func (v *FeedView) BeginScroll() {
	if v.scrollAnim != nil {
		v.scrollAnim.Stop()
		v.scrollAnim = nil
	}
}

// UpdateScroll follows the finger with damping past either end
func (v *FeedView) UpdateScroll(dy float32) {
	cur := v.feed.Current()
	if (cur == 0 && dy > 0) || (cur == v.feed.Len()-1 && dy < 0) {
		dy *= ScrollEdgeDamping
	}
	v.scrollOffset = dy
	v.relayout()
}

// EndScroll settles on the nearest page
func (v *FeedView) EndScroll(dy float32) {
	h := v.pageHeight()
	old := v.feed.Current()
	if _, err := v.feed.SettleScroll(float32(old)*h-dy, h); err != nil {
		v.logger.Debug("scroll refused", "error", err)
	}
	v.animateScroll(v.scrollOffset + float32(v.feed.Current()-old)*h)
}

// Wheel pages by one clip per wheel burst
func (v *FeedView) Wheel(dy float32) {
	now := time.Now()
	if dy == 0 || now.Sub(v.lastWheel) < WheelPageCooldown {
		return
	}
	v.lastWheel = now
	if dy < 0 {
		v.page(1)
	} else {
		v.page(-1)
	}
}

// animateScroll eases the pager offset from start back to zero
func (v *FeedView) animateScroll(start float32) {
	if v.scrollAnim != nil {
		v.scrollAnim.Stop()
	}
	v.scrollOffset = start
	v.relayout()
	v.scrollAnim = fyne.NewAnimation(ScrollSettleDuration, func(f float32) {
		v.scrollOffset = start * (1 - f)
		v.relayout()
	})
	v.scrollAnim.Curve = fyne.AnimationEaseOut
	v.scrollAnim.Start()
}

// onIndexChanged moves playback to the new foreground clip
func (v *FeedView) onIndexChanged(old, current int) {
	v.logger.Info("foreground changed", "from", old, "to", current)
	if card, ok := v.cards[old]; ok {
		card.leaveForeground()
	}
	v.bridge.Rewind(old)
	v.settings.SetStartIndex(current)
	v.syncVisible()
}

// visibleIndices returns the indices that get a card, current last
func (v *FeedView) visibleIndices() []int {
	cur := v.feed.Current()
	var out []int
	for _, i := range []int{cur - 1, cur + 1, cur} {
		if i >= 0 && i < v.feed.Len() {
			out = append(out, i)
		}
	}
	return out
}

// syncVisible creates and drops cards so exactly the foreground clip and its
// neighbours have one, then mirrors the set into the bridge
func (v *FeedView) syncVisible() {
	visible := make(map[int]model.Clip)
	for _, i := range v.visibleIndices() {
		clip, _ := v.feed.Clip(i)
		visible[i] = clip
		if _, ok := v.cards[i]; !ok {
			v.cards[i] = NewClipCard(v, i, clip)
		}
	}
	for i, card := range v.cards {
		if _, ok := visible[i]; !ok {
			card.stopAnimations()
			delete(v.cards, i)
		}
	}

	v.bridge.Sync(visible)
	cur := v.feed.Current()
	for i := range visible {
		v.bridge.SetPaused(i, i != cur)
		v.refreshPlayback(i)
	}
	v.rebuildPager()
}

func (v *FeedView) rebuildPager() {
	objects := make([]fyne.CanvasObject, 0, len(v.cards))
	for _, i := range v.visibleIndices() {
		objects = append(objects, v.cards[i])
	}
	v.pager.Objects = objects
	v.pager.Refresh()
}

func (v *FeedView) relayout() {
	if v.pager != nil {
		v.pager.Refresh()
	}
}

func (v *FeedView) pageHeight() float32 {
	if h := v.pager.Size().Height; h > 0 {
		return h
	}
	return PagerMinHeight
}

func (v *FeedView) canvas() fyne.Canvas {
	return v.window.Canvas()
}

// onPlaybackUpdate runs on the UI thread after the bridge applied an event
func (v *FeedView) onPlaybackUpdate(st playback.State) {
	if card, ok := v.cards[st.Slot]; ok {
		card.SetPlayback(st)
	}
}

// pumpEvents forwards bridge events onto the UI thread
func (v *FeedView) pumpEvents(ctx context.Context) {
	defer close(v.done)
	events := v.bridge.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			fyne.Do(func() {
				v.bridge.Apply(ev)
			})
		}
	}
}

// Cards returns the current cards keyed by clip index
func (v *FeedView) Cards() map[int]*ClipCard {
	return v.cards
}

// Close stops the event pump and every card animation
func (v *FeedView) Close() {
	v.cancel()
	<-v.done
	for _, card := range v.cards {
		card.stopAnimations()
	}
	if v.scrollAnim != nil {
		v.scrollAnim.Stop()
	}
}

// pagerLayout stacks cards one page apart around the foreground clip
type pagerLayout struct {
	view *FeedView
}

func (l *pagerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	cur := l.view.feed.Current()
	for _, o := range objects {
		o.Resize(size)
		card, ok := o.(*ClipCard)
		if !ok {
			o.Move(fyne.NewPos(0, 0))
			continue
		}
		y := float32(card.index-cur)*size.Height + l.view.scrollOffset
		o.Move(fyne.NewPos(card.display.DX, y+card.display.DY))
	}
}

func (l *pagerLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(PagerMinWidth, PagerMinHeight)
}
