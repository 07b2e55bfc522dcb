package server

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/dps/go-raytracer/pkg/renderer"
	"github.com/dps/go-raytracer/pkg/scene"
)

// Server exposes the renderer over HTTP: POST a JSON scene config to
// /api/render and get the rendered PNG back
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Start begins serving; it blocks until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Raytracer server listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the HTTP handler, exposed for tests
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/render", s.handleRender)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprintln(w, "POST a JSON scene config to /api/render to receive a PNG.")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	sc, err := scene.FromJSON(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid scene: %v", err), http.StatusBadRequest)
		return
	}
	if err := sc.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("invalid scene: %v", err), http.StatusBadRequest)
		return
	}

	log.Printf("Rendering %dx%d scene with %d objects", sc.Width, sc.Height, len(sc.Objects))
	pixels := renderer.NewRenderer(sc).Render()

	var buf bytes.Buffer
	if err := renderer.EncodePNG(&buf, pixels, sc.Width, sc.Height); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode image: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
