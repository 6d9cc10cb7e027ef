package shapefile

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// LoadOptions controls parallel loading behavior and error handling.
type LoadOptions struct {
	// Workers specifies the number of pairs decoded at once.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// SkipErrors causes loading to continue even when individual pairs fail.
	// Failed pairs are skipped and errors are collected.
	// When false, the first error stops loading and is returned alone.
	SkipErrors bool

	// Progress is an optional callback for tracking loading progress.
	// Called after each pair is processed (successfully or with error).
	// Parameters: (loaded, total) where loaded is count of pairs processed so far.
	Progress func(loaded, total int)

	// Decode is passed to the decoder for every pair.
	Decode DecodeOptions
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Progress:   nil,
		Decode:     DefaultDecodeOptions(),
	}
}

// LoadLayers decodes many pairs concurrently.
//
// Pairs are independent, so each one runs its own decode and join. Returned
// layers keep the order of pairs; failed pairs are left out. Errors are
// prefixed with the pair's shape file path.
//
// Example:
//
//	pairs, _ := shapefile.FindPairs("data/osm")
//	layers, errs := shapefile.LoadLayers(ctx, pairs, shapefile.NewDecoder(), shapefile.LoadOptions{
//	    Workers:    8,
//	    SkipErrors: true,
//	    Decode:     shapefile.DefaultDecodeOptions(),
//	})
//	if len(errs) > 0 {
//	    fmt.Printf("Skipped %d layers due to errors\n", len(errs))
//	}
func LoadLayers(ctx context.Context, pairs []Pair, dec Decoder, opts LoadOptions) ([]*Layer, []error) {
	if len(pairs) == 0 {
		return []*Layer{}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	results := make([]*Layer, len(pairs))
	var (
		mu     sync.Mutex
		errs   []error
		loaded int
	)
	finish := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		loaded++
		if err != nil {
			errs = append(errs, err)
		}
		if opts.Progress != nil {
			opts.Progress(loaded, len(pairs))
		}
	}

	for i, pair := range pairs {
		i, pair := i, pair
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			layer, err := dec.DecodeWithOptions(pair.Shp, pair.Dbf, opts.Decode)
			if err != nil {
				err = fmt.Errorf("%s: %w", pair.Shp, err)
				glog.Errorf("Error loading layer: %v", err)
				finish(err)
				if opts.SkipErrors {
					return nil
				}
				return err
			}
			results[i] = layer
			finish(nil)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, []error{err}
	}

	layers := make([]*Layer, 0, len(results))
	for _, l := range results {
		if l != nil {
			layers = append(layers, l)
		}
	}
	return layers, errs
}
