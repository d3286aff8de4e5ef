// createImage.go
package mapshot

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// elementWaitTimeout bounds the wait for the map container itself. The
// container is created synchronously by the scene script, so missing it is a
// scene construction bug, not slow tiles.
const elementWaitTimeout = 15 * time.Second

// Renderer drives a headless browser to rasterize a SceneDocument. Each Render
// call owns a fresh browser session which is torn down on every exit path;
// sessions are never shared across concurrent renders because viewport and
// navigation state are session-local.
type Renderer struct {
	cfg Config
	log *slog.Logger
}

// NewRenderer returns a Renderer using the given config. A nil logger falls
// back to slog.Default().
func NewRenderer(cfg Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cfg: cfg, log: logger}
}

// Render loads the scene and captures a screenshot scoped to the map element.
// The viewport is forced to the requested size over the DevTools protocol
// with device pixel ratio pinned to 1, so output pixels map 1:1 to requested
// pixels. CSS sizing alone is not trusted: it has left scrollbar gutters and
// residual chrome shrinking the effective area below the requested size.
//
// Launch, navigation and element lookup failures are fatal for this call and
// are not retried here. A tile readiness timeout is the one tolerated fault:
// the capture proceeds with whatever tiles made it, since a slightly stale
// basemap beats a hung pipeline.
func (r *Renderer) Render(ctx context.Context, scene SceneDocument) (RenderResult, error) {
	window := scene.Window

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("force-device-scale-factor", "1"),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(scene.HTML))

	// Viewport forcing + navigation. A failure here is either the browser
	// binary not launching or the scene not loading; both are environmental
	// and surfaced as-is for the caller to retry or not.
	err := chromedp.Run(tabCtx,
		emulation.SetDeviceMetricsOverride(int64(window.WidthPx), int64(window.HeightPx), 1.0, false),
		chromedp.Navigate(dataURI),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return RenderResult{}, fmt.Errorf("%w: navigation: %v", ErrRenderTimeout, err)
		}
		return RenderResult{}, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}
	r.log.Info("viewport forced",
		"viewport", fmt.Sprintf("%dx%d", window.WidthPx, window.HeightPx),
		"target", fmt.Sprintf("%dx%d", window.WidthPx, window.HeightPx))

	selector := "#" + scene.MapElementID
	waitCtx, cancelWait := context.WithTimeout(tabCtx, elementWaitTimeout)
	defer cancelWait()
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return RenderResult{}, fmt.Errorf("%w: %s: %v", ErrElementNotFound, selector, err)
	}

	// Bounded wait for the scene's readiness flag.
	var ready bool
	err = chromedp.Run(tabCtx,
		chromedp.Poll("window.__mapReady === true", &ready,
			chromedp.WithPollingInterval(250*time.Millisecond),
			chromedp.WithPollingTimeout(r.cfg.TileWaitTimeout)),
	)
	if err != nil {
		if errors.Is(err, chromedp.ErrPollingTimeout) {
			r.log.Warn("tile wait timed out, capturing partial render", "timeout", r.cfg.TileWaitTimeout)
		} else if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return RenderResult{}, fmt.Errorf("%w: tile wait: %v", ErrRenderTimeout, err)
		} else {
			return RenderResult{}, fmt.Errorf("tile readiness evaluation failed: %w", err)
		}
	}

	// Screenshot the map element only. Capturing the window would bring back
	// the rail artifacts from window chrome and scrollbars.
	var screenshotBuf []byte
	if err := chromedp.Run(tabCtx, chromedp.Screenshot(selector, &screenshotBuf, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return RenderResult{}, fmt.Errorf("%w: screenshot: %v", ErrRenderTimeout, err)
		}
		return RenderResult{}, fmt.Errorf("screenshot of %s failed: %w", selector, err)
	}
	if len(screenshotBuf) == 0 {
		return RenderResult{}, ErrEmptyScreenshot
	}

	imgCfg, err := png.DecodeConfig(bytes.NewReader(screenshotBuf))
	if err != nil {
		return RenderResult{}, fmt.Errorf("failed to decode screenshot PNG header: %w", err)
	}

	result := RenderResult{
		PNG:            screenshotBuf,
		ActualWidthPx:  imgCfg.Width,
		ActualHeightPx: imgCfg.Height,
	}
	r.log.Info("screenshot captured",
		"final_png", fmt.Sprintf("%dx%d", result.ActualWidthPx, result.ActualHeightPx),
		"expected", fmt.Sprintf("%dx%d", window.WidthPx, window.HeightPx))
	return result, nil
}
