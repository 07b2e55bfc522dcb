package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"math/rand"
	"os"
	"runtime"
	"sync"

	"github.com/dps/go-raytracer/pkg/integrator"
	"github.com/dps/go-raytracer/pkg/scene"
)

// Renderer drives per-pixel sampling over a worker pool. The image is
// partitioned into single-scanline bands; each worker owns a disjoint slice
// of the output buffer and a private RNG, so no synchronization is needed
// beyond the final join.
type Renderer struct {
	scene      *scene.Scene
	tracer     *integrator.PathTracer
	numWorkers int
	seed       int64
}

// NewRenderer creates a renderer for the given scene using one worker per CPU
func NewRenderer(s *scene.Scene) *Renderer {
	return &Renderer{
		scene:      s,
		tracer:     integrator.NewPathTracer(s),
		numWorkers: runtime.NumCPU(),
		seed:       rand.Int63(),
	}
}

// SetWorkers overrides the worker count; n <= 0 restores the CPU default
func (r *Renderer) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	r.numWorkers = n
}

// SetSeed fixes the base RNG seed, making single-worker renders reproducible
func (r *Renderer) SetSeed(seed int64) {
	r.seed = seed
}

// Render produces the pixel buffer: packed RGB8, row-major, top row first,
// exactly Width*Height*3 bytes
func (r *Renderer) Render() []byte {
	width, height := r.scene.Width, r.scene.Height
	samples := max(1, r.scene.SamplesPerPixel)

	pixels := make([]byte, width*height*3)

	rows := make(chan int, height)
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < r.numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(r.seed + int64(workerID)))
			for y := range rows {
				band := pixels[y*width*3 : (y+1)*width*3]
				r.renderLine(band, y, samples, rng)
			}
		}(i)
	}
	wg.Wait()

	return pixels
}

// renderLine renders one scanline into its band of the output buffer
func (r *Renderer) renderLine(band []byte, y, samples int, rng *rand.Rand) {
	width := float64(r.scene.Width)
	height := float64(r.scene.Height)

	for x := 0; x < r.scene.Width; x++ {
		var sum [3]float64
		for s := 0; s < samples; s++ {
			u := (float64(x) + rng.Float64()) / (width - 1)
			v := (height - (float64(y) + rng.Float64())) / (height - 1)
			ray := r.scene.Camera.GetRay(u, v)
			c := r.tracer.Trace(ray, rng)
			sum[0] += c.X
			sum[1] += c.Y
			sum[2] += c.Z
		}

		// Average and apply square-root gamma correction
		scale := 1.0 / float64(samples)
		band[x*3] = toByte(math.Sqrt(scale * sum[0]))
		band[x*3+1] = toByte(math.Sqrt(scale * sum[1]))
		band[x*3+2] = toByte(math.Sqrt(scale * sum[2]))
	}
}

// toByte converts a [0, 1] channel value to an 8-bit value
func toByte(v float64) byte {
	return byte(max(0, min(1, v)) * 255.0)
}

// EncodePNG encodes a packed RGB8 pixel buffer as PNG
func EncodePNG(w io.Writer, pixels []byte, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := (y*width + x) * 3
			dst := img.PixOffset(x, y)
			img.Pix[dst] = pixels[src]
			img.Pix[dst+1] = pixels[src+1]
			img.Pix[dst+2] = pixels[src+2]
			img.Pix[dst+3] = 255
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// WritePNG persists a packed RGB8 pixel buffer as a PNG file
func WritePNG(filename string, pixels []byte, width, height int) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()
	return EncodePNG(file, pixels, width, height)
}
