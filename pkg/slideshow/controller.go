// Package slideshow implements the wallpaper rotation engine: candidate
// discovery, next-image selection, conversion to the OS bitmap format,
// the per-OS commit, and the persisted run state tying them together.
package slideshow

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dixieflatline76/Easel/util"
	"github.com/dixieflatline76/Easel/util/log"
)

// State is the controller's run state.
type State int

// Controller states.
const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

// String returns the human readable name of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	}
	return "Idle"
}

// Notifier delivers a user-visible notice to the UI layer. A nil Notifier
// drops notices.
type Notifier func(title, message string)

// Controller orchestrates the rotation pipeline on a timer and owns the
// run/pause state. Commands and timer ticks are serialized under one mutex:
// a rotation runs to completion (scan, select, convert, apply, persist)
// before the next event is accepted, so the cache artifact and the settings
// file each have a single writer.
type Controller struct {
	mu        sync.Mutex
	settings  Settings
	store     *Store
	catalog   *Catalog
	selector  *Selector
	processor *Processor
	os        OS
	history   *History // optional
	notifier  Notifier

	state        State
	running      *util.SafeFlag
	appliedStyle Style
	ticker       *time.Ticker
	stopTicker   chan struct{}

	// tickInterval, when non-zero, overrides the configured interval for
	// the rotation timer. Tests shorten it to exercise the timer path.
	tickInterval time.Duration

	convertFailures *util.SafeCounter
	failureNotice   rate.Sometimes
	persistNotice   rate.Sometimes
}

// NewController creates a controller for the current OS, restoring the
// persisted settings from the store. history may be nil to disable the
// rotation log.
func NewController(store *Store, cachePath string, history *History, notifier Notifier) *Controller {
	currentOS := getOS()
	return newController(store, currentOS, NewProcessor(currentOS, cachePath), history, notifier)
}

// newController wires a controller from explicit collaborators; tests
// substitute a mock OS here.
func newController(store *Store, osImpl OS, processor *Processor, history *History, notifier Notifier) *Controller {
	return &Controller{
		settings:        store.Load(),
		store:           store,
		catalog:         NewCatalog(),
		selector:        NewSelector(),
		processor:       processor,
		os:              osImpl,
		history:         history,
		notifier:        notifier,
		state:           StateIdle,
		running:         util.NewSafeBool(),
		convertFailures: util.NewSafeInt(),
		failureNotice:   rate.Sometimes{Interval: FailureNoticeInterval},
		persistNotice:   rate.Sometimes{Interval: FailureNoticeInterval},
	}
}

// Resume restores the controller at launch. A persisted running state
// re-enters Running without user action; a rotation happens immediately
// only when no cache artifact exists or a fresh pick was requested,
// otherwise the existing artifact is re-applied and the timer armed.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settings.Running {
		return
	}

	c.state = StateRunning
	c.running.Set(true)

	if c.settings.ChangeOnStart || !c.processor.ArtifactExists() {
		_ = c.rotate()
	} else if err := c.reapply(); err != nil {
		log.Printf("Controller: could not re-apply cached wallpaper: %v", err)
	}

	if c.state == StateRunning { // rotate may have paused on an empty set
		c.armTickerLocked()
	}
}

// Start transitions Idle or Paused to Running: one immediate rotation, then
// a repeating timer at the configured interval. Calling Start while already
// Running is a no-op and does not mutate the rotation position.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRunning {
		return nil
	}

	c.state = StateRunning
	c.running.Set(true)
	c.settings.Running = true

	err := c.rotate()
	if c.state == StateRunning {
		c.armTickerLocked()
		c.persistLocked()
	}
	return err
}

// Pause disarms the timer and retains the rotation position for resume.
// Calling Pause when not Running is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}
	c.refreshLocked()
	c.pauseLocked()
	c.persistLocked()
}

// Next performs one rotation out-of-band in any state. When Running, the
// timer phase resets so the next automatic tick is a full interval away.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.rotate()
	if c.state == StateRunning && c.ticker != nil {
		c.ticker.Reset(c.rotationInterval())
	}
	return err
}

// Shutdown disarms the timer and persists the current state. The run flag
// in the settings is left as-is so a running slideshow resumes on the next
// launch.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshLocked()
	c.disarmTickerLocked()
	c.persistLocked()
}

// State returns the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsRunning reports whether the slideshow timer is armed. Safe to call
// from any goroutine without blocking on an in-flight rotation.
func (c *Controller) IsRunning() bool {
	return c.running.Value()
}

// Settings returns a snapshot of the current settings.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.settings
	snapshot.Sources = append([]Source(nil), c.settings.Sources...)
	return snapshot
}

// AddSource appends a source. Duplicates by path are the caller's
// responsibility; insertion order is preserved.
func (c *Controller) AddSource(src Source) {
	c.updateOptions(func(s *Settings) {
		s.Sources = append(s.Sources, src)
	})
}

// RemoveSource removes the first source with the given path and reports
// whether one was found.
func (c *Controller) RemoveSource(path string) bool {
	removed := false
	c.updateOptions(func(s *Settings) {
		for i, src := range s.Sources {
			if src.Path == path {
				s.Sources = append(s.Sources[:i], s.Sources[i+1:]...)
				removed = true
				return
			}
		}
	})
	return removed
}

// SetSingleImage overrides the sources with a single image until cleared.
func (c *Controller) SetSingleImage(path string) {
	c.updateOptions(func(s *Settings) { s.SingleImage = path })
}

// ClearSingleImage removes the single-image override.
func (c *Controller) ClearSingleImage() {
	c.updateOptions(func(s *Settings) { s.SingleImage = "" })
}

// SetPolicy changes the rotation policy, effective on the next rotation.
func (c *Controller) SetPolicy(p Policy) {
	c.updateOptions(func(s *Settings) { s.Policy = p })
}

// SetStyle changes the wallpaper style, committed with the next rotation.
func (c *Controller) SetStyle(style Style) {
	c.updateOptions(func(s *Settings) { s.Style = style })
}

// SetIntervalSecs changes the rotation interval. When Running the timer is
// rearmed with the new period.
func (c *Controller) SetIntervalSecs(secs int64) {
	c.updateOptions(func(s *Settings) { s.IntervalSecs = secs })
}

// SetAutoRotate toggles portrait auto-rotation.
func (c *Controller) SetAutoRotate(enabled bool) {
	c.updateOptions(func(s *Settings) { s.AutoRotate = enabled })
}

// SetSmartFit toggles content-aware cropping to the screen size.
func (c *Controller) SetSmartFit(enabled bool) {
	c.updateOptions(func(s *Settings) { s.SmartFit = enabled })
}

// SetChangeOnStart toggles picking a fresh wallpaper when resuming at launch.
func (c *Controller) SetChangeOnStart(enabled bool) {
	c.updateOptions(func(s *Settings) { s.ChangeOnStart = enabled })
}

// SetRunOnStartup records whether the engine is registered to launch at
// login. Registration itself is handled by the startup package.
func (c *Controller) SetRunOnStartup(enabled bool) {
	c.updateOptions(func(s *Settings) { s.RunOnStartup = enabled })
}

// SetStartMinimized toggles launching without a visible window when started
// at login.
func (c *Controller) SetStartMinimized(enabled bool) {
	c.updateOptions(func(s *Settings) { s.StartMinimized = enabled })
}

// Clear resets the persisted state to defaults and stops the slideshow.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.disarmTickerLocked()
	c.state = StateIdle
	c.running.Set(false)
	c.settings = DefaultSettings()
	c.persistLocked()
}

// updateOptions applies a settings mutation and persists it. New options
// take effect on the next rotation; the currently displayed image is not
// revisited. An interval change while Running rearms the timer.
func (c *Controller) updateOptions(mutate func(*Settings)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshLocked()
	prevInterval := c.rotationInterval()
	mutate(&c.settings)
	c.settings.sanitize()

	if c.state == StateRunning && c.ticker != nil && c.rotationInterval() != prevInterval {
		c.ticker.Reset(c.rotationInterval())
	}
	c.persistLocked()
}

// rotate runs one pass of the pipeline. Caller must hold c.mu.
func (c *Controller) rotate() error {
	c.refreshLocked()
	candidates := c.catalog.Scan(c.settings.Sources, c.settings.SingleImage)

	path, cursor, err := c.selector.Select(candidates, c.settings.Policy, c.settings.LastShown, c.settings.Cursor)
	if err != nil {
		// Nothing to rotate to. Pause instead of ticking against an empty
		// set; the previous artifact stays in place.
		log.Printf("Controller: %v, pausing", err)
		c.pauseLocked()
		c.persistLocked()
		c.notify("Slideshow Paused", "No images available in the configured sources.")
		return err
	}

	artifact, err := c.processor.Convert(path, c.settings.AutoRotate, c.settings.SmartFit)
	if err != nil {
		// Skip the bad candidate: advancing the cursor means the following
		// tick tries the next one. Notices are batched so one broken file
		// does not spam the user.
		log.Printf("Controller: %v", err)
		c.settings.LastShown = path
		c.settings.Cursor = cursor
		c.persistLocked()
		failures := c.convertFailures.Increment()
		if failures >= MaxConsecutiveConvertFailures {
			c.failureNotice.Do(func() {
				c.notify("Wallpaper Errors", fmt.Sprintf("%d images in a row could not be converted; most recent: %s", failures, path))
			})
		}
		return err
	}

	if c.appliedStyle != c.settings.Style {
		if err := c.os.setWallpaperStyle(c.settings.Style); err != nil {
			applyErr := &ApplyError{Op: "style", Err: err}
			log.Printf("Controller: %v", applyErr)
			c.notify("Wallpaper Error", "The display style could not be applied.")
			return applyErr
		}
		c.appliedStyle = c.settings.Style
	}

	if err := c.os.setWallpaper(artifact); err != nil {
		// The OS keeps the prior background; the rotation position is not
		// advanced either.
		applyErr := &ApplyError{Op: "wallpaper", Err: err}
		log.Printf("Controller: %v", applyErr)
		c.notify("Wallpaper Error", "The wallpaper could not be applied.")
		return applyErr
	}

	c.convertFailures.Set(0)
	c.settings.LastShown = path
	c.settings.Cursor = cursor
	c.persistLocked()
	c.recordHistory(path)
	log.Debugf("Controller: set wallpaper %s", path)
	return nil
}

// reapply re-commits the existing cache artifact, used on resume when no
// fresh pick is wanted. Caller must hold c.mu.
func (c *Controller) reapply() error {
	if err := c.os.setWallpaperStyle(c.settings.Style); err != nil {
		return &ApplyError{Op: "style", Err: err}
	}
	c.appliedStyle = c.settings.Style
	if err := c.os.setWallpaper(c.processor.CachePath()); err != nil {
		return &ApplyError{Op: "wallpaper", Err: err}
	}
	return nil
}

// pauseLocked transitions to Paused and disarms the timer. Caller must
// hold c.mu.
func (c *Controller) pauseLocked() {
	c.disarmTickerLocked()
	c.state = StatePaused
	c.running.Set(false)
	c.settings.Running = false
}

// refreshLocked reloads the settings when another process rewrote the
// settings file, so mutations made by a concurrent CLI invocation take
// effect on the next rotation instead of being overwritten by this
// process's in-memory snapshot. The run state stays owned by this
// controller. Caller must hold c.mu.
func (c *Controller) refreshLocked() {
	if !c.store.Modified() {
		return
	}
	log.Debugf("Controller: settings file changed on disk, reloading")
	prevInterval := c.rotationInterval()
	fresh := c.store.Load()
	fresh.Running = c.settings.Running
	c.settings = fresh
	if c.state == StateRunning && c.ticker != nil && c.rotationInterval() != prevInterval {
		c.ticker.Reset(c.rotationInterval())
	}
}

// rotationInterval returns the period of the rotation timer.
func (c *Controller) rotationInterval() time.Duration {
	if c.tickInterval > 0 {
		return c.tickInterval
	}
	return c.settings.Interval()
}

// armTickerLocked starts the repeating rotation timer. Caller must hold c.mu.
func (c *Controller) armTickerLocked() {
	c.disarmTickerLocked()
	c.ticker = time.NewTicker(c.rotationInterval())
	c.stopTicker = make(chan struct{})
	go c.tickLoop(c.ticker, c.stopTicker)
}

// disarmTickerLocked stops the timer goroutine. Caller must hold c.mu.
func (c *Controller) disarmTickerLocked() {
	if c.ticker != nil {
		c.ticker.Stop()
		close(c.stopTicker)
		c.ticker = nil
		c.stopTicker = nil
	}
}

// tickLoop delivers timer ticks until stopped. Each tick funnels through
// the controller mutex, so ticks can never overlap commands or each other.
func (c *Controller) tickLoop(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-ticker.C:
			c.tick()
		case <-stop:
			return
		}
	}
}

// tick runs one automatic rotation.
func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}
	_ = c.rotate()
}

// persistLocked saves the settings, absorbing write failures: a failed
// save is reported but never stops the slideshow. Caller must hold c.mu.
func (c *Controller) persistLocked() {
	if err := c.store.Save(c.settings); err != nil {
		log.Printf("Controller: failed to save settings: %v", err)
		c.persistNotice.Do(func() {
			c.notify("Settings Error", "Your settings could not be saved; changes may be lost on exit.")
		})
	}
}

// recordHistory appends a successful rotation to the history log, if one
// is attached. Failures are advisory.
func (c *Controller) recordHistory(path string) {
	if c.history == nil {
		return
	}
	if err := c.history.Record(HistoryEntry{Path: path, ShownAt: time.Now()}); err != nil {
		log.Printf("Controller: failed to record history: %v", err)
	}
}

// notify forwards a notice to the UI layer, if any.
func (c *Controller) notify(title, message string) {
	if c.notifier != nil {
		c.notifier(title, message)
	}
}
