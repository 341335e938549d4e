package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/services"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [category]",
	Short: "Interactive gallery browser",
	Long: `Browse the gallery interactively: categories on the left, the
asset grid on the right, and a preview pane for the selected asset.

Moving the selection starts a background download of the preview rendition
and cancels the one before it. Thumbnails of the open category download in
the background; the grid updates as they land in the cache.

Keys:
- tab     : Switch focus between panes
- k / ↑   : Move up
- j / ↓   : Move down
- enter   : Open category / preview asset
- n / p   : Next / previous asset in the preview pager
- y       : Copy the asset download URL
- o       : Open the cached file
- q       : Quit`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// Watch the cache dir so background downloads refresh the grid.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(imageCache.Dir()); err != nil {
		return fmt.Errorf("failed to watch cache directory: %w", err)
	}

	startCategory := ""
	if len(args) > 0 {
		startCategory = args[0]
	}

	m := newBrowseModel(startCategory, watcher)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}

// --- Messages ---

type categoriesLoadedMsg struct {
	taxonomies []domain.Taxonomy
	categories []domain.GalleryCategory
}

type assetsLoadedMsg struct {
	category domain.GalleryCategory
}

type previewReadyMsg struct {
	assetID string
	path    string
}

type previewFailedMsg struct {
	assetID string
	err     error
}

type cacheChangedMsg struct{}

type loadFailedMsg struct{ err error }

// --- Key bindings ---

type browseKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Select key.Binding
	Next   key.Binding
	Prev   key.Binding
	Copy   key.Binding
	Open   key.Binding
	Quit   key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Select, k.Next, k.Prev, k.Copy, k.Open, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var browseKeys = browseKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
	Prev:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev")),
	Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
	Open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// --- Model ---

type browsePane int

const (
	paneCategories browsePane = iota
	paneAssets
)

type browseState int

const (
	stateLoading browseState = iota
	stateDone
	stateError
)

type browseModel struct {
	state         browseState
	err           error
	startCategory string

	taxonomies []domain.Taxonomy
	categories []domain.GalleryCategory

	focus       browsePane
	catCursor   int
	assetCursor int

	current       *domain.GalleryCategory
	loadingAssets bool

	previewPath    string
	previewAssetID string
	previewErr     error

	watcher *fsnotify.Watcher
	spinner spinner.Model
	help    help.Model
	status  string
	width   int
	height  int
}

func newBrowseModel(startCategory string, watcher *fsnotify.Watcher) browseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	return browseModel{
		state:         stateLoading,
		startCategory: startCategory,
		watcher:       watcher,
		spinner:       sp,
		help:          help.New(),
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCategoriesCmd(), waitForCacheEvent(m.watcher))
}

// --- Commands ---

func loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		resp, err := galleryService.Execute(getContext(), services.HomeRequest{WithCovers: true})
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return categoriesLoadedMsg{taxonomies: resp.Taxonomies, categories: resp.Categories}
	}
}

func loadAssetsCmd(category domain.GalleryCategory) tea.Cmd {
	return func() tea.Msg {
		resp, err := categoryService.Execute(getContext(), newLoadRequest(category))
		if err != nil {
			return loadFailedMsg{err: err}
		}

		// Kick off background thumbnail downloads; the fsnotify watcher
		// refreshes the grid as files land.
		go func() {
			_, _ = categoryService.DownloadAll(getContext(), services.DownloadAllRequest{
				Category:   resp.Category,
				Rendition:  cfg.ThumbnailRendition,
				MaxWorkers: cfg.MaxWorkers,
			}, nil)
		}()

		return assetsLoadedMsg{category: resp.Category}
	}
}

func previewCmd(asset domain.Asset) tea.Cmd {
	return func() tea.Msg {
		path, err := previewService.Fetch(getContext(), asset, cfg.PreviewRendition)
		if err != nil {
			return previewFailedMsg{assetID: asset.ID, err: err}
		}
		return previewReadyMsg{assetID: asset.ID, path: path}
	}
}

func waitForCacheEvent(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
					return cacheChangedMsg{}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// --- Update ---

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case categoriesLoadedMsg:
		m.state = stateDone
		m.taxonomies = msg.taxonomies
		m.categories = msg.categories
		if len(m.categories) == 0 {
			m.status = "No categories published to this channel"
			return m, nil
		}
		if m.startCategory != "" {
			for i, cat := range m.categories {
				if matchesCategory(cat, m.startCategory) {
					m.catCursor = i
					break
				}
			}
			m.startCategory = ""
			return m.openCategory()
		}
		return m, nil

	case assetsLoadedMsg:
		m.loadingAssets = false
		cat := msg.category
		m.current = &cat
		m.assetCursor = 0
		m.focus = paneAssets
		if len(cat.Assets) == 0 {
			m.status = "Category is empty"
			return m, nil
		}
		return m.startPreview()

	case previewReadyMsg:
		// A stale preview for a previously selected asset is ignored.
		if m.selectedAssetID() == msg.assetID {
			m.previewPath = msg.path
			m.previewAssetID = msg.assetID
			m.previewErr = nil
		}
		return m, nil

	case previewFailedMsg:
		// A superseded download is not an error state.
		if errors.Is(msg.err, services.ErrSuperseded) {
			return m, nil
		}
		if m.selectedAssetID() == msg.assetID {
			m.previewErr = msg.err
		}
		return m, nil

	case cacheChangedMsg:
		// Re-render; cached markers read straight from the cache.
		return m, waitForCacheEvent(m.watcher)

	case loadFailedMsg:
		m.state = stateError
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, browseKeys.Quit):
		previewService.Cancel()
		return m, tea.Quit

	case key.Matches(msg, browseKeys.Switch):
		if m.focus == paneCategories {
			m.focus = paneAssets
		} else {
			m.focus = paneCategories
		}
		return m, nil

	case key.Matches(msg, browseKeys.Up):
		if m.focus == paneCategories && m.catCursor > 0 {
			m.catCursor--
		} else if m.focus == paneAssets && m.assetCursor > 0 {
			m.assetCursor--
			return m.startPreview()
		}
		return m, nil

	case key.Matches(msg, browseKeys.Down):
		if m.focus == paneCategories && m.catCursor < len(m.categories)-1 {
			m.catCursor++
		} else if m.focus == paneAssets && m.current != nil && m.assetCursor < len(m.current.Assets)-1 {
			m.assetCursor++
			return m.startPreview()
		}
		return m, nil

	case key.Matches(msg, browseKeys.Select):
		if m.focus == paneCategories {
			return m.openCategory()
		}
		return m.startPreview()

	case key.Matches(msg, browseKeys.Next):
		if m.current != nil && m.assetCursor < len(m.current.Assets)-1 {
			m.assetCursor++
			return m.startPreview()
		}
		return m, nil

	case key.Matches(msg, browseKeys.Prev):
		if m.current != nil && m.assetCursor > 0 {
			m.assetCursor--
			return m.startPreview()
		}
		return m, nil

	case key.Matches(msg, browseKeys.Copy):
		if asset := m.selectedAsset(); asset != nil {
			if url := downloadURL(asset); url != "" {
				if err := clipboard.WriteAll(url); err != nil {
					m.status = "Clipboard access failed"
				} else {
					m.status = "URL copied"
				}
			}
		}
		return m, nil

	case key.Matches(msg, browseKeys.Open):
		if m.previewPath != "" && m.previewAssetID == m.selectedAssetID() {
			if err := fileOpener.Open(getContext(), m.previewPath); err != nil {
				m.status = "Failed to open viewer"
			}
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) openCategory() (tea.Model, tea.Cmd) {
	if m.catCursor >= len(m.categories) {
		return m, nil
	}
	m.loadingAssets = true
	m.status = ""
	return m, loadAssetsCmd(m.categories[m.catCursor])
}

// startPreview begins fetching the selected asset's preview; the service
// cancels the previous in-flight download.
func (m browseModel) startPreview() (tea.Model, tea.Cmd) {
	asset := m.selectedAsset()
	if asset == nil {
		return m, nil
	}
	m.previewPath = ""
	m.previewErr = nil
	m.status = ""
	return m, previewCmd(*asset)
}

func (m browseModel) selectedAsset() *domain.Asset {
	if m.current == nil || m.assetCursor >= len(m.current.Assets) {
		return nil
	}
	return &m.current.Assets[m.assetCursor]
}

func (m browseModel) selectedAssetID() string {
	if asset := m.selectedAsset(); asset != nil {
		return asset.ID
	}
	return ""
}

// matchesCategory checks a category against an id/name query
func matchesCategory(cat domain.GalleryCategory, query string) bool {
	lower := strings.ToLower(query)
	return cat.ID == query ||
		strings.ToLower(cat.Name) == lower ||
		strings.HasPrefix(strings.ToLower(cat.Name), lower)
}

// --- View ---

func (m browseModel) View() string {
	switch m.state {
	case stateLoading:
		return "\n " + m.spinner.View() + " Loading gallery...\n"
	case stateError:
		return "\n " + ui.FormatError("Failed to load gallery") + "\n " + ui.FormatMuted(m.err.Error()) + "\n"
	}

	left := m.renderCategories()
	middle := m.renderAssets()
	right := m.renderPreview()

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right)

	footer := m.help.View(browseKeys)
	if m.status != "" {
		footer = ui.FormatInfo(m.status) + "\n" + footer
	}

	return body + "\n" + footer
}

func (m browseModel) renderCategories() string {
	var b strings.Builder
	b.WriteString(ui.StyleHeader.Render("Categories"))
	b.WriteString("\n\n")

	for i, cat := range m.categories {
		line := fmt.Sprintf("%s (%d)", truncate(cat.Name, 18), cat.TotalResults)
		if i == m.catCursor {
			if m.focus == paneCategories {
				line = ui.StyleSelected.Render(line)
			} else {
				line = ui.StyleCategory.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return ui.StylePane.Render(b.String())
}

func (m browseModel) renderAssets() string {
	var b strings.Builder

	if m.loadingAssets {
		b.WriteString(m.spinner.View() + " Loading assets...")
		return ui.StylePane.Render(b.String())
	}

	if m.current == nil {
		b.WriteString(ui.FormatMuted("Select a category"))
		return ui.StylePane.Render(b.String())
	}

	b.WriteString(ui.StyleHeader.Render(m.current.Name))
	b.WriteString("\n\n")

	if len(m.current.Assets) == 0 {
		b.WriteString(ui.FormatMuted("(empty)"))
		return ui.StylePane.Render(b.String())
	}

	for i, asset := range m.current.Assets {
		marker := " "
		if imageCache.Contains(asset.CacheKey(cfg.ThumbnailRendition)) {
			marker = ui.StyleSuccess.Render(ui.IconCached)
		}

		line := fmt.Sprintf("%s %s", marker, truncate(asset.Name, 26))
		if i == m.assetCursor {
			if m.focus == paneAssets {
				line = ui.StyleSelected.Render(line)
			} else {
				line = ui.StyleCategory.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return ui.StylePane.Render(b.String())
}

func (m browseModel) renderPreview() string {
	var b strings.Builder
	b.WriteString(ui.StyleHeader.Render("Preview"))
	b.WriteString("\n\n")

	asset := m.selectedAsset()
	if asset == nil {
		b.WriteString(ui.FormatMuted("No asset selected"))
		return ui.StylePane.Render(b.String())
	}

	b.WriteString(ui.StyleBold.Render(asset.Name))
	b.WriteString("\n")
	b.WriteString(ui.StyleAssetID.Render(asset.ID))
	b.WriteString("\n\n")

	if asset.Caption != "" {
		b.WriteString(asset.Caption)
		b.WriteString("\n\n")
	}

	b.WriteString(ui.RenderKeyValue("Size", ui.FormatBytes(asset.Size)))
	b.WriteString("\n")
	if r, ok := asset.Rendition(cfg.PreviewRendition); ok {
		b.WriteString(ui.RenderKeyValue("Rendition", fmt.Sprintf("%s %dx%d", r.Name, r.Width, r.Height)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.previewErr != nil:
		b.WriteString(ui.FormatError("Preview failed"))
		b.WriteString("\n")
		b.WriteString(ui.FormatMuted(truncate(m.previewErr.Error(), 40)))
	case m.previewPath != "" && m.previewAssetID == asset.ID:
		b.WriteString(ui.FormatSuccess("Cached"))
		b.WriteString("\n")
		b.WriteString(ui.FormatMuted(m.previewPath))
		b.WriteString("\n")
		b.WriteString(ui.FormatInfo("Press 'o' to open"))
	default:
		b.WriteString(m.spinner.View() + " Downloading preview...")
	}

	return ui.StylePane.Render(b.String())
}
