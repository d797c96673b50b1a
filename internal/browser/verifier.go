package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/alnah/go-themedimg/internal/fileutil"
	xlog "github.com/alnah/go-themedimg/internal/log"
	"github.com/alnah/go-themedimg/internal/process"
)

// Sentinel errors for browser operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrEmulation      = errors.New("failed to emulate color scheme")
	ErrInspect        = errors.New("failed to inspect page")
)

// DefaultTimeout bounds page loading when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// inspectScript lists themed images in document order with their
// rendered visibility.
const inspectScript = `() => JSON.stringify(
  Array.from(document.querySelectorAll('img[data-theme-variant]')).map((el) => ({
    variant: el.getAttribute('data-theme-variant') || '',
    src: el.getAttribute('src') || '',
    visible: typeof el.checkVisibility === 'function'
      ? el.checkVisibility({ checkVisibilityCSS: true })
      : getComputedStyle(el).display !== 'none' && getComputedStyle(el).visibility !== 'hidden',
  }))
)`

// Option configures a Verifier.
type Option func(*Verifier)

// WithTimeout sets the page load timeout.
func WithTimeout(d time.Duration) Option {
	return func(v *Verifier) {
		v.timeout = d
	}
}

// WithLogger sets the logger for browser events.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Verifier) {
		v.logger = l
	}
}

// Verifier checks themed image visibility in headless Chrome.
// The browser starts lazily on first use. A Verifier is safe for
// concurrent use; Close releases the browser.
type Verifier struct {
	timeout time.Duration
	logger  zerolog.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// New creates a Verifier.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ensureBrowser lazily launches and connects to the browser.
func (v *Verifier) ensureBrowser() (*rod.Browser, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.browser != nil {
		return v.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	v.launcher = l
	v.browser = b
	v.logger.Debug().Int(xlog.FieldPID, l.PID()).Msg("browser started")
	return b, nil
}

// Close releases browser resources.
func (v *Verifier) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var err error
	if v.browser != nil {
		err = v.browser.Close()
		v.browser = nil
	}
	if v.launcher != nil {
		if pid := v.launcher.PID(); pid > 0 {
			if kerr := process.KillTree(pid); kerr != nil {
				v.logger.Debug().Err(kerr).Int(xlog.FieldPID, pid).Msg("browser process tree kill failed")
			}
		}
		v.launcher.Kill()
		v.launcher.Cleanup()
		v.launcher = nil
	}
	return err
}

// VerifyHTML writes htmlContent to a temporary file and verifies it.
func (v *Verifier) VerifyHTML(ctx context.Context, htmlContent string) (*Report, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	report, err := v.VerifyFile(ctx, tmpPath)
	if err != nil {
		return nil, err
	}
	report.Path = "<inline>"
	return report, nil
}

// VerifyFile loads the HTML file at path under each scheme and checks
// every themed pair.
func (v *Verifier) VerifyFile(ctx context.Context, path string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	b, err := v.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: pathToFileURL(absPath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := v.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPageLoad, path, err)
	}

	report := &Report{Path: path}
	for _, scheme := range Schemes {
		states, err := inspect(page, scheme)
		if err != nil {
			return nil, err
		}

		pairs, violations := evaluate(scheme, states)
		report.Pairs = pairs
		report.Violations = append(report.Violations, violations...)

		v.logger.Debug().
			Str(xlog.FieldPath, path).
			Str(xlog.FieldScheme, string(scheme)).
			Int(xlog.FieldCount, pairs).
			Msg("scheme checked")
	}

	return report, nil
}

// inspect emulates scheme on page and returns the themed image states.
func inspect(page *rod.Page, scheme Scheme) ([]ImageState, error) {
	err := proto.EmulationSetEmulatedMedia{
		Features: []*proto.EmulationMediaFeature{
			{Name: "prefers-color-scheme", Value: string(scheme)},
		},
	}.Call(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEmulation, scheme, err)
	}

	res, err := page.Eval(inspectScript)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspect, err)
	}

	var states []ImageState
	if err := json.Unmarshal([]byte(res.Value.Str()), &states); err != nil {
		return nil, fmt.Errorf("%w: decoding result: %v", ErrInspect, err)
	}
	return states, nil
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
