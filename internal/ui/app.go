package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mholtz/tote/internal/basket"
	"github.com/mholtz/tote/internal/catalog"
	"github.com/mholtz/tote/internal/prefs"
	"github.com/mholtz/tote/internal/session"
	"github.com/mholtz/tote/internal/shopapi"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewCart
	ViewWishlist
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *shopapi.Client
	Catalog   *catalog.Store
	Cart      *basket.Cart
	Wishlist  *basket.Wishlist
	Session   *session.Session
	PollTick  time.Duration
	ThemeName string
	Email     string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *shopapi.Client
	catalog   *catalog.Store
	cart      *basket.Cart
	wishlist  *basket.Wishlist
	session   *session.Session
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    catalog.Snapshot
	lastUpdated time.Time

	// Per-view selection
	selectedRow map[View]int

	// Catalog search
	search        searchState
	searchResults []shopapi.Product

	// Login form
	login loginState

	// Transient status line (cleared on next keypress)
	notice string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 30 * time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		catalog:     opts.Catalog,
		cart:        opts.Cart,
		wishlist:    opts.Wishlist,
		session:     opts.Session,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		theme:       GetTheme(themeName),
		currentView: ViewCatalog,
		selectedRow: make(map[View]int),
		search:      newSearchState(),
		login:       newLoginState(opts.Email),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch snapshot immediately on start
	if m.catalog != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.catalog))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.catalog != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.catalog))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = catalog.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, nil

	case mutationMsg:
		if msg.notice != "" {
			m.notice = msg.notice
		}
		m.clampSelection()
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case logoutMsg:
		m.notice = "Logged out"
		return m, nil

	case searchResultMsg:
		m.search.busy = false
		if msg.err != nil {
			m.notice = "Search failed: " + msg.err.Error()
			return m, nil
		}
		m.searchResults = msg.products
		m.selectedRow[ViewCatalog] = 0
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.login.active {
		return m.renderLogin()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.active {
		return m.handleLoginKey(msg)
	}
	if m.search.active {
		return m.handleSearchKey(msg)
	}

	m.notice = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "T":
		// Cycle theme
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case "tab":
		m.currentView = (m.currentView + 1) % 3
		return m, nil

	case "shift+tab":
		m.currentView = (m.currentView + 2) % 3
		return m, nil

	case "1":
		m.currentView = ViewCatalog
		return m, nil

	case "2":
		m.currentView = ViewCart
		return m, nil

	case "3":
		m.currentView = ViewWishlist
		return m, nil

	case "L":
		if m.session != nil && m.session.IsAuthenticated() {
			return m, logoutCmd(m.ctx, m.client, m.session)
		}
		m.login.open()
		return m, nil

	case "/":
		if m.currentView == ViewCatalog {
			m.search.open()
			return m, nil
		}

	case "esc":
		if m.searchResults != nil {
			m.searchResults = nil
			m.selectedRow[ViewCatalog] = 0
			return m, nil
		}
		m.currentView = ViewCatalog
		return m, nil
	}

	switch m.currentView {
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewWishlist:
		return m.handleWishlistKey(msg)
	}

	return m, nil
}

// moveSelection adjusts the current view's cursor within [0, count).
func (m *Model) moveSelection(key string, count int) {
	if count == 0 {
		m.selectedRow[m.currentView] = 0
		return
	}
	row := m.selectedRow[m.currentView]
	switch key {
	case "j", "down":
		if row < count-1 {
			row++
		}
	case "k", "up":
		if row > 0 {
			row--
		}
	case "g", "home":
		row = 0
	case "G", "end":
		row = count - 1
	}
	m.selectedRow[m.currentView] = row
}

// clampSelection keeps cursors valid after collections shrink.
func (m *Model) clampSelection() {
	counts := map[View]int{
		ViewCatalog:  len(m.catalogItems()),
		ViewCart:     len(m.cartItems()),
		ViewWishlist: len(m.wishlistItems()),
	}
	for view, count := range counts {
		if count == 0 {
			m.selectedRow[view] = 0
		} else if m.selectedRow[view] >= count {
			m.selectedRow[view] = count - 1
		}
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Email: m.login.email()})
}

// renderContent renders the main content area based on the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCatalog:
		return m.renderCatalog()
	case ViewCart:
		return m.renderCart()
	case ViewWishlist:
		return m.renderWishlist()
	default:
		return ""
	}
}

// contentHeight is the number of rows available below the two header lines.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// Messages

type tickMsg time.Time

type snapshotMsg catalog.Snapshot

type mutationMsg struct {
	notice string
}

type logoutMsg struct{}

type searchResultMsg struct {
	products []shopapi.Product
	err      error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func logoutCmd(ctx context.Context, client *shopapi.Client, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		// Best effort; the local session is cleared regardless.
		if client != nil {
			_ = client.Logout(ctx)
			client.SetToken("")
		}
		sess.Logout()
		return logoutMsg{}
	}
}

func searchCmd(ctx context.Context, client *shopapi.Client, query string) tea.Cmd {
	return func() tea.Msg {
		products, err := client.FetchProducts(ctx, shopapi.ProductQuery{Search: query})
		return searchResultMsg{products: products, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
