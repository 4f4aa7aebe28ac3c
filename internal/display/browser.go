package display

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/datplot/internal/figure"
	"github.com/banshee-data/datplot/internal/render"
	"github.com/banshee-data/datplot/internal/webchart"
)

// shutdownTimeout bounds the graceful HTTP shutdown after cancellation.
const shutdownTimeout = time.Second

// Browser serves the figure over HTTP until its context is cancelled.
// The interactive page lives at /figure/<id> and the raster at
// /figure/<id>.png. Nothing is written to disk.
type Browser struct {
	Addr string
	// Out receives the URL of the figure page.
	Out io.Writer
}

// Show implements Backend.
func (b *Browser) Show(ctx context.Context, fig *figure.Figure) error {
	h, err := NewFigureHandler(fig)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", b.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", b.Addr, err)
	}
	server := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		opsf("serving figure on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	url := fmt.Sprintf("http://%s%s", ln.Addr(), h.Path())
	if b.Out != nil {
		fmt.Fprintf(b.Out, "Figure available at %s (Ctrl-C to quit)\n", url)
	}

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		diagf("HTTP server shutdown error: %v", err)
		if err := server.Close(); err != nil {
			diagf("HTTP server force close error: %v", err)
		}
	}
	diagf("HTTP server stopped")
	return nil
}

// FigureHandler serves one figure rendered up front.
type FigureHandler struct {
	id   string
	html []byte
	png  []byte
	mux  *http.ServeMux
}

// NewFigureHandler renders fig as an echarts page and a PNG under a fresh
// random id.
func NewFigureHandler(fig *figure.Figure) (*FigureHandler, error) {
	var page bytes.Buffer
	if err := webchart.Render(&page, fig); err != nil {
		return nil, err
	}
	var img bytes.Buffer
	if err := render.WritePNG(&img, fig); err != nil {
		return nil, err
	}

	h := &FigureHandler{id: uuid.NewString(), html: page.Bytes(), png: img.Bytes()}
	h.mux = http.NewServeMux()
	h.mux.HandleFunc(h.Path(), h.handlePage)
	h.mux.HandleFunc(h.Path()+".png", h.handlePNG)
	h.mux.HandleFunc("/", h.handleRoot)
	return h, nil
}

// ID returns the figure id.
func (h *FigureHandler) ID() string { return h.id }

// Path returns the URL path of the figure page.
func (h *FigureHandler) Path() string { return "/figure/" + h.id }

func (h *FigureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tracef("%s %s", r.Method, r.URL.Path)
	h.mux.ServeHTTP(w, r)
}

func (h *FigureHandler) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.html)
}

func (h *FigureHandler) handlePNG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(h.png)
}

func (h *FigureHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, h.Path(), http.StatusFound)
}
