// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popover/manager.go
// Summary: Presentation manager owning the single popover slot of a host.
// Usage: Create one Manager per host and route show/update/dismiss through it.
// Notes: Show always dismisses the active session first, so at most one
// overlay and one view exist at any time.

package popover

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/framegrace/texelpop/geom"
	"github.com/framegrace/texelpop/texel"
)

var (
	// ErrNoKeyWindow is returned by Show when no window can host the overlay.
	ErrNoKeyWindow = errors.New("popover: no key window")
	// ErrNoActivePopover is returned by Update when nothing is presented.
	ErrNoActivePopover = errors.New("popover: no active popover")
	// ErrInvalidConfig wraps the validation errors of a rejected config.
	ErrInvalidConfig = errors.New("popover: invalid config")
	// ErrClosed is returned when attaching a view that was already closed.
	ErrClosed = errors.New("popover: view closed")
	// ErrAlreadyAttached is returned when attaching a view twice.
	ErrAlreadyAttached = errors.New("popover: view already attached")
)

// Manager presents popovers on one host, one at a time.
type Manager struct {
	host    *texel.Host
	session *Session
}

// NewManager creates a manager for host.
func NewManager(host *texel.Host) *Manager {
	return &Manager{host: host}
}

// Session is one presentation: the dismiss overlay and the popover in it.
type Session struct {
	manager   *Manager
	overlay   texel.NodeID
	region    texel.NodeID
	view      *View
	onDismiss func()
	done      bool
}

// View returns the session's popover view.
func (s *Session) View() *View { return s.view }

// Overlay returns the handle of the full-window dismiss overlay.
func (s *Session) Overlay() texel.NodeID { return s.overlay }

// Region returns the clipping region standing in for the parent container,
// or NoNode when the popover sits directly on the overlay.
func (s *Session) Region() texel.NodeID { return s.region }

// Done reports whether the session was dismissed.
func (s *Session) Done() bool { return s.done }

// Dismiss tears the session down: the overlay is hidden, its children are
// removed along with the view, the overlay itself is removed and the
// dismiss handler runs. Later calls do nothing.
func (s *Session) Dismiss() {
	if s.done {
		return
	}
	s.done = true
	tree := s.manager.host.Tree()

	tree.SetHidden(s.overlay, true)
	if s.view != nil {
		s.view.Close()
	}
	for _, child := range tree.Children(s.overlay) {
		tree.Remove(child)
	}
	tree.Remove(s.overlay)

	if s.manager.session == s {
		s.manager.session = nil
	}
	s.overlay, s.region = texel.NoNode, texel.NoNode
	if s.onDismiss != nil {
		s.onDismiss()
	}
}

// Active returns the current session, or nil.
func (m *Manager) Active() *Session {
	return m.session
}

// Show presents content in a popover pointing at trigger. trigger and
// parent may be NoNode: without a trigger the popover is centred, without
// a parent it is placed on the full-window overlay. Any active session is
// dismissed first. Nothing is shown when the config is rejected or no key
// window exists.
func (m *Manager) Show(trigger, parent, content texel.NodeID, cfg *Config, onShown, onDismiss func()) (*Session, error) {
	m.Dismiss()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validateLayout(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	tree := m.host.Tree()
	if !tree.Valid(content) {
		return nil, fmt.Errorf("content: %w", texel.ErrUnknownNode)
	}
	window, ok := tree.KeyWindow()
	if !ok {
		log.Printf("Popover: no key window, nothing shown")
		return nil, ErrNoKeyWindow
	}
	bounds, _ := tree.Bounds(window)

	s := &Session{manager: m, onDismiss: onDismiss}
	s.overlay = tree.NewNode(bounds)
	tree.SetFill(s.overlay, cfg.Overlay())
	tree.SetTapHandler(s.overlay, s.Dismiss)
	if err := tree.Attach(window, s.overlay); err != nil {
		tree.Remove(s.overlay)
		return nil, fmt.Errorf("attach overlay: %w", err)
	}

	host := s.overlay
	if parent != texel.NoNode {
		if frame, ok := tree.ConvertFrame(parent, s.overlay); ok {
			s.region = attachRegion(tree, s.overlay, frame, s.Dismiss)
			if s.region != texel.NoNode {
				host = s.region
			}
		} else {
			log.Printf("Popover: parent container vanished, using overlay")
		}
	}

	m.session = s
	s.view = NewView(m.host, cfg, s.Dismiss)
	if err := s.view.Attach(trigger, host, content, onShown); err != nil {
		s.onDismiss = nil
		s.Dismiss()
		return nil, err
	}
	return s, nil
}

// attachRegion adds a clipping node over frame to overlay. Taps on it call
// onTap. It returns NoNode, leaving nothing behind, when attaching fails.
func attachRegion(tree *texel.Tree, overlay texel.NodeID, frame geom.Rect, onTap func()) texel.NodeID {
	region := tree.NewNode(frame)
	tree.SetClips(region, true)
	tree.SetTapHandler(region, onTap)
	if err := tree.Attach(overlay, region); err != nil {
		tree.Remove(region)
		log.Printf("Popover: parent region: %v, using overlay", err)
		return texel.NoNode
	}
	return region
}

// Update resizes the active popover.
func (m *Manager) Update(w, h float64, d time.Duration, onComplete func()) error {
	if m.session == nil {
		return ErrNoActivePopover
	}
	m.session.view.Resize(w, h, d, onComplete)
	return nil
}

// Dismiss ends the active session, if any.
func (m *Manager) Dismiss() {
	if m.session != nil {
		m.session.Dismiss()
	}
}
