package host

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/sokinpui/eolbox/internal/log"
	"github.com/sokinpui/eolbox/lineending"
)

// fileFormats maps Neovim's 'fileformat' values to conventions.
var fileFormats = map[string]lineending.Kind{
	"dos":  lineending.CRLF,
	"mac":  lineending.CR,
	"unix": lineending.LF,
}

func fileFormatFor(kind lineending.Kind) (string, bool) {
	for ff, k := range fileFormats {
		if k == kind {
			return ff, true
		}
	}
	return "", false
}

// Nvim is an Adapter backed by a scratch buffer in a Neovim instance. The
// buffer's 'fileformat' option is its native convention. Neovim keeps one
// convention per buffer, so SetText normalises mixed input.
type Nvim struct {
	nvim          *nvim.Nvim
	buffer        nvim.Buffer
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
}

var (
	_ Adapter  = (*Nvim)(nil)
	_ Restorer = (*Nvim)(nil)
)

// NewNvim connects to the instance at $NVIM_LISTEN_ADDRESS or starts a
// headless one, and opens a scratch buffer in it.
func NewNvim() (*Nvim, error) {
	n := &Nvim{}

	if addr := os.Getenv("NVIM_LISTEN_ADDRESS"); addr != "" {
		v, err := nvim.Dial(addr)
		if err == nil {
			n.nvim = v
		} else {
			log.Warn(log.CatHost, "could not dial nvim, starting headless", "addr", addr, "error", err)
		}
	}

	if n.nvim == nil {
		if err := n.startHeadless(); err != nil {
			return nil, err
		}
	}

	buf, err := n.nvim.CreateBuffer(false, true)
	if err != nil {
		n.Close()
		return nil, fmt.Errorf("failed to create nvim scratch buffer: %w", err)
	}
	if err := n.nvim.SetCurrentBuffer(buf); err != nil {
		n.Close()
		return nil, fmt.Errorf("failed to switch to nvim scratch buffer: %w", err)
	}
	n.buffer = buf
	log.Info(log.CatHost, "nvim host ready", "selfStarted", n.isSelfStarted)
	return n, nil
}

func (n *Nvim) startHeadless() error {
	tmpDir, err := os.MkdirTemp("", "eolbox-nvim-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(tmpDir)
		return fmt.Errorf("failed to start headless nvim: %w. Is 'nvim' in your PATH?", err)
	}

	// Wait for the socket file to appear.
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		os.RemoveAll(tmpDir)
		return fmt.Errorf("failed to connect to headless nvim: %w", err)
	}

	n.nvim = v
	n.isSelfStarted = true
	n.cmd = cmd
	n.socketPath = socketPath

	if err := v.Command("set noswapfile"); err != nil {
		log.ErrorErr(log.CatHost, "configuring headless nvim", err)
	}
	return nil
}

// Text joins the buffer lines with the 'fileformat' sequence.
func (n *Nvim) Text() (string, error) {
	lines, err := n.nvim.BufferLines(n.buffer, 0, -1, true)
	if err != nil {
		return "", fmt.Errorf("failed to read nvim buffer: %w", err)
	}
	kind, err := n.convention()
	if err != nil {
		return "", err
	}
	seq, err := kind.Sequence()
	if err != nil {
		return "", err
	}

	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, seq), nil
}

// SetText stores text one line per break and sets 'fileformat' from the
// first break, as :edit would detect it.
func (n *Nvim) SetText(text string) error {
	return n.Restore(text, lineending.First(text))
}

// Restore stores text one line per break and sets 'fileformat' to kind.
// A kind that is not concrete leaves 'fileformat' alone.
func (n *Nvim) Restore(text string, kind lineending.Kind) error {
	lines, _ := lineending.Lines(text)
	content := make([][]byte, len(lines))
	for i, l := range lines {
		content[i] = []byte(l)
	}

	b := n.nvim.NewBatch()
	if ff, ok := fileFormatFor(kind); ok {
		b.SetBufferOption(n.buffer, "fileformat", ff)
	}
	b.SetBufferLines(n.buffer, 0, -1, true, content)
	if err := b.Execute(); err != nil {
		return fmt.Errorf("failed to set nvim buffer: %w", err)
	}
	log.Debug(log.CatHost, "nvim text set", "lines", len(lines))
	return nil
}

// InsertAtCursor puts text before the cursor; each break opens a new line.
func (n *Nvim) InsertAtCursor(text string) error {
	lines, _ := lineending.Lines(text)
	if err := n.nvim.Put(lines, "c", false, true); err != nil {
		return fmt.Errorf("failed to insert into nvim buffer: %w", err)
	}
	return nil
}

func (n *Nvim) QueryConvention() (Code, error) {
	kind, err := n.convention()
	if err != nil {
		return CodeUnsupported, err
	}
	return CodeFor(kind), nil
}

// SetConvention changes 'fileformat', which converts every line break of
// the buffer at once.
func (n *Nvim) SetConvention(kind lineending.Kind) error {
	ff, ok := fileFormatFor(kind)
	if !ok {
		return fmt.Errorf("set convention: %w: %s", lineending.ErrInvalidTarget, kind)
	}
	if err := n.nvim.SetBufferOption(n.buffer, "fileformat", ff); err != nil {
		return fmt.Errorf("failed to set fileformat: %w", err)
	}
	log.Info(log.CatHost, "nvim convention set", "fileformat", ff)
	return nil
}

func (n *Nvim) convention() (lineending.Kind, error) {
	var ff string
	if err := n.nvim.BufferOption(n.buffer, "fileformat", &ff); err != nil {
		return lineending.Unsupported, fmt.Errorf("failed to read fileformat: %w", err)
	}
	kind, ok := fileFormats[ff]
	if !ok {
		return lineending.Unsupported, fmt.Errorf("unknown fileformat %q", ff)
	}
	return kind, nil
}

// Close disconnects from Neovim and cleans up if it was self-started.
func (n *Nvim) Close() error {
	if n.nvim != nil {
		n.nvim.Close()
	}
	if n.isSelfStarted && n.cmd != nil && n.cmd.Process != nil {
		if err := n.cmd.Process.Kill(); err == nil {
			n.cmd.Wait()
			os.RemoveAll(filepath.Dir(n.socketPath))
		}
	}
	return nil
}
