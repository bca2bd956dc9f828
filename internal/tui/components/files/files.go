// Package files provides the uploaded-documents sidebar panel.
package files

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/tui/components/panel"
	"github.com/askbuddy/askbuddy/internal/tui/styles"
	"github.com/askbuddy/askbuddy/internal/tui/util"
)

// SelectedMsg is sent when a file is chosen as the question scope.
// A zero FileID means "All Files".
type SelectedMsg struct {
	FileID   string
	FileName string
}

// DeleteRequestMsg asks the page to delete a file on the server.
type DeleteRequestMsg struct {
	FileID   string
	FileName string
}

// Panel lists the uploaded files with an "All Files" entry on top.
type Panel struct {
	box        *panel.BorderedPanel
	files      []api.FileItem
	cursor     int // 0 is the All Files entry
	selectedID string
	width      int
	height     int
	focused    bool
}

// NewPanel creates the files panel.
func NewPanel() *Panel {
	return &Panel{
		box: panel.New("Files"),
	}
}

// SetFiles replaces the file list. The cursor is clamped and a vanished
// selection falls back to All Files.
func (p *Panel) SetFiles(files []api.FileItem) {
	p.files = files
	if p.cursor > len(files) {
		p.cursor = len(files)
	}
	if p.selectedID != "" && p.fileByID(p.selectedID) == nil {
		p.selectedID = ""
	}
}

// SetSelected marks the file used as the current question scope.
func (p *Panel) SetSelected(fileID string) {
	p.selectedID = fileID
}

// SetSize sets the panel dimensions.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets keyboard focus.
func (p *Panel) SetFocused(focused bool) {
	p.focused = focused
}

func (p *Panel) fileByID(id string) *api.FileItem {
	for i := range p.files {
		if p.files[i].ID == id {
			return &p.files[i]
		}
	}
	return nil
}

// Update handles key events while the panel has focus.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.files) {
			p.cursor++
		}
	case "enter":
		if p.cursor == 0 {
			return p, util.CmdHandler(SelectedMsg{})
		}
		f := p.files[p.cursor-1]
		return p, util.CmdHandler(SelectedMsg{FileID: f.ID, FileName: f.FileName})
	case "d", "delete":
		if p.cursor > 0 {
			f := p.files[p.cursor-1]
			return p, util.CmdHandler(DeleteRequestMsg{FileID: f.ID, FileName: f.FileName})
		}
	}

	return p, nil
}

// View renders the panel.
func (p *Panel) View() string {
	t := styles.CurrentTheme()

	contentWidth := p.width - 4
	lines := make([]string, 0, len(p.files)+1)

	for i := 0; i <= len(p.files); i++ {
		label := "All Files"
		selected := p.selectedID == ""
		if i > 0 {
			f := p.files[i-1]
			label = f.FileName
			selected = p.selectedID == f.ID
		}

		prefix := "  "
		if selected {
			prefix = "* "
		}
		line := panel.TruncateToWidth(prefix+label, contentWidth)

		style := t.S().Text
		if i == p.cursor && p.focused {
			style = t.S().Primary.Bold(true)
		} else if selected {
			style = t.S().Primary
		}
		lines = append(lines, style.Render(line))
	}

	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}

	p.box.SetTitle(fmt.Sprintf("Files (%d)", len(p.files)))
	p.box.SetContent(content)
	p.box.SetSize(p.width, p.height)
	p.box.SetFocused(p.focused)
	return p.box.View()
}
