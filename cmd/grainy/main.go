package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	grainy "github.com/esimov/grainy/core"
	"github.com/esimov/grainy/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const banner = `
┌─┐┬─┐┌─┐┬┌┐┌┬ ┬
│ ┬├┬┘├─┤││││└┬┘
└─┘┴└─┴ ┴┴┘└┘ ┴

Film grain and texture overlays for images.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

const (
	// message colors
	successColor = "\x1b[92m"
	errorColor   = "\x1b[31m"
	defaultColor = "\x1b[0m"
)

// Version indicates the current build version.
var Version string

var fileTypes = []string{".jpg", ".jpeg", ".png"}

func main() {
	conf := loadConfiguration()

	var (
		// Flags
		source      = flag.String("in", pipeName, "Source image or directory")
		destination = flag.String("out", pipeName, "Destination image or directory")
		amount      = flag.Float64("amount", conf.Amount, "Grain strength")
		chromatic   = flag.Bool("chroma", conf.Chromatic, "Chromatic grain (independent offset per channel)")
		alpha       = flag.Bool("alpha", conf.Alpha, "Apply grain to the alpha channel")
		randMode    = flag.String("mode", conf.RandomMode, "Random mode: int|float")
		seed        = flag.Uint64("seed", conf.Seed, "Random seed, 0 picks a random one")
		texture     = flag.String("texture", "", "Texture image to tile over the source")
		tileWidth   = flag.Float64("tw", 0, "Texture tile width, 0 uses the texture width")
		tileHeight  = flag.Float64("th", 0, "Texture tile height, 0 uses the texture height")
		reflect     = flag.Bool("reflect", false, "Mirror alternate texture tiles")
		blend       = flag.String("blend", conf.Blend, "Texture blend mode")
		frames      = flag.Int("frames", conf.Frames, "Number of frames to render")
		driftEvery  = flag.Int("drift", conf.DriftEvery, "Frames between two texture drifts")
		quality     = flag.Int("quality", conf.Quality, "JPEG output quality")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)

	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, banner, Version)
		flag.PrintDefaults()
		printEnvUsage(os.Stderr)
	}
	flag.Parse()

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: grainy -in input.jpg -out out.png -amount 20")
	}
	if *verbose {
		grainy.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	mode, err := grainy.ParseBlendMode(*blend)
	if err != nil {
		log.Fatalf("%sInvalid blend mode: %v%s", errorColor, err, defaultColor)
	}

	fx := &effect{
		amount:    *amount,
		chromatic: *chromatic,
		alpha:     *alpha,
		mode:      *randMode,
		seed:      *seed,
		frames:    *frames,
	}
	if *texture != "" {
		fx.texture, err = imaging.Open(*texture)
		if err != nil {
			log.Fatalf("%sCannot open the texture file: %v%s", errorColor, err, defaultColor)
		}
		fx.overlay = &grainy.OverlayOptions{
			Width:   *tileWidth,
			Height:  *tileHeight,
			Mode:    mode,
			Reflect: *reflect,
		}
		if fx.frames > 1 {
			fx.overlay.Animate = &grainy.Drift{AtFrame: *driftEvery}
		}
	}

	start := time.Now()

	jobs, err := collectJobs(*source, *destination, fx.frames)
	if err != nil {
		log.Fatalf("%s%v%s", errorColor, err, defaultColor)
	}

	// Progress indicator
	ind := utils.NewProgressIndicator("Applying grain...", len(jobs)*max(fx.frames, 1), time.Millisecond*100)
	showProgress := *destination != pipeName
	if showProgress {
		ind.Start()
	}

	err = runJobs(context.Background(), jobs, runtime.NumCPU(), func(i int, j job) error {
		var seed uint64
		if fx.seed != 0 {
			seed = fx.seed + uint64(i)
		}
		return j.run(fx, seed, *quality, ind.Advance)
	})
	if err != nil {
		if showProgress {
			ind.StopMsg = fmt.Sprintf("Applying grain... %sfailed ✗%s\n", errorColor, defaultColor)
			ind.Stop()
		}
		log.Fatalf("Rendering error: %s%v%s", errorColor, err, defaultColor)
	}
	if showProgress {
		ind.StopMsg = fmt.Sprintf("Applying grain... %sfinished ✔%s", successColor, defaultColor)
		ind.Stop()
		log.Printf("\n%s%d%s image(s) processed", successColor, len(jobs), defaultColor)
		log.Printf("\nExecution time: %s%.2fs%s\n", successColor, time.Since(start).Seconds(), defaultColor)
	}
}

// job is one source image and the place its frames go to.
type job struct {
	source      string
	destination string
}

// collectJobs expands a source directory into one job per image.
func collectJobs(source, destination string, frames int) ([]job, error) {
	if source == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
	}
	if destination == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		if frames > 1 {
			return nil, errors.New("multiple frames cannot be written to stdout")
		}
	}

	fi, err := os.Stat(source)
	if source == pipeName || (err == nil && !fi.IsDir()) {
		if destination != pipeName && !inSlice(strings.ToLower(filepath.Ext(destination)), fileTypes) {
			return nil, fmt.Errorf("output file type not supported: %v", filepath.Ext(destination))
		}
		return []job{{source: source, destination: destination}}, nil
	}
	if err != nil {
		return nil, err
	}

	if destination == pipeName {
		return nil, errors.New("a source directory needs a destination directory")
	}
	if err := os.MkdirAll(destination, 0755); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, err
	}
	var jobs []job
	for _, e := range entries {
		if e.IsDir() || !inSlice(strings.ToLower(filepath.Ext(e.Name())), fileTypes) {
			continue
		}
		jobs = append(jobs, job{
			source:      filepath.Join(source, e.Name()),
			destination: filepath.Join(destination, e.Name()),
		})
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no images found in %s", source)
	}
	return jobs, nil
}

// runJobs calls fn for every job with at most limit calls in flight.
// The first error cancels the jobs that have not started yet.
func runJobs(ctx context.Context, jobs []job, limit int, fn func(i int, j job) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	sem := make(chan struct{}, max(limit, 1))
	for i, j := range jobs {
		sem <- struct{}{}
		if ctx.Err() != nil {
			<-sem
			break
		}
		g.Go(func() error {
			defer func() { <-sem }()
			if err := fn(i, j); err != nil {
				cancel()
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// run decodes the job's source, renders it and writes every frame.
func (j job) run(fx *effect, seed uint64, quality int, advance func()) error {
	src, err := decodeImage(j.source)
	if err != nil {
		return fmt.Errorf("%s: %w", j.source, err)
	}
	return fx.render(src, seed, func(frame int, img image.Image) error {
		defer advance()
		if j.destination == pipeName {
			return imaging.Encode(os.Stdout, img, imaging.PNG)
		}
		path := j.destination
		if fx.frames > 1 {
			path = framePath(path, frame)
		}
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	})
}

func decodeImage(source string) (image.Image, error) {
	var r io.Reader = os.Stdin
	if source != pipeName {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// framePath inserts a zero padded frame number before the extension.
func framePath(path string, frame int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(path, ext), frame, ext)
}

// inSlice checks if the item exists in the slice.
func inSlice(item string, slice []string) bool {
	for _, it := range slice {
		if it == item {
			return true
		}
	}
	return false
}
