// Package tray shows the bridge state in the system tray using getlantern/systray.
package tray

import (
	"sync"
	"sync/atomic"

	"github.com/getlantern/systray"
)

// Item is a menu entry. Items with a nil Callback are shown disabled and act as labels.
type Item struct {
	Title    string
	Callback func()

	mu      sync.Mutex
	checked bool
	item    *systray.MenuItem
}

// SetTitle changes the item text, before or after the tray is running.
func (i *Item) SetTitle(title string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Title = title
	if i.item != nil {
		i.item.SetTitle(title)
	}
}

// SetChecked shows or hides the check mark.
func (i *Item) SetChecked(checked bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.checked = checked
	if i.item == nil {
		return
	}
	if checked {
		i.item.Check()
	} else {
		i.item.Uncheck()
	}
}

// Tray manages the system tray icon and menu
type Tray struct {
	tooltip string
	items   []*Item
	quitCh  chan struct{}
	onExit  func()
	ready   atomic.Bool
}

// New creates a tray. onExit runs after the tray loop ends.
func New(tooltip string, onExit func()) *Tray {
	return &Tray{
		tooltip: tooltip,
		quitCh:  make(chan struct{}),
		onExit:  onExit,
	}
}

// AddItem appends a menu entry. Must be called before Run.
func (t *Tray) AddItem(title string, callback func()) *Item {
	it := &Item{Title: title, Callback: callback}
	t.items = append(t.items, it)
	return it
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.items = append(t.items, nil)
}

// Run starts the tray event loop (blocks). It must run on the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() {
		close(t.quitCh)
		if t.onExit != nil {
			t.onExit()
		}
	})
}

func (t *Tray) setupMenu() {
	systray.SetTitle("headmouse")
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(Icon(false))
	t.ready.Store(true)

	for _, it := range t.items {
		if it == nil {
			systray.AddSeparator()
			continue
		}

		it.mu.Lock()
		mi := systray.AddMenuItem(it.Title, "")
		if it.checked {
			mi.Check()
		}
		if it.Callback == nil {
			mi.Disable()
		}
		it.item = mi
		it.mu.Unlock()

		if it.Callback != nil {
			go t.clickLoop(it, mi)
		}
	}
}

func (t *Tray) clickLoop(it *Item, mi *systray.MenuItem) {
	for {
		select {
		case <-mi.ClickedCh:
			it.Callback()
		case <-t.quitCh:
			return
		}
	}
}

// SetActive switches the icon between the idle and active variants.
func (t *Tray) SetActive(active bool) {
	if !t.ready.Load() {
		return
	}
	systray.SetIcon(Icon(active))
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}
