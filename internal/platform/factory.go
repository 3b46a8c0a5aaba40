package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/thoughts/pkg/adapters/fs"
	"github.com/aretw0/thoughts/pkg/adapters/sqlite"
	"github.com/aretw0/thoughts/pkg/core"
	"github.com/aretw0/thoughts/pkg/serializer"
)

// New opens the notebook stored in dir: it builds the configured storage
// adapter, restores the saved thoughts and arranges for every later change
// to be written back.
//
//	nb, err := thoughts.Open("~/.local/share/thoughts", thoughts.WithAdapter("sqlite"))
func New(dir string, opts ...Option) (*Notebook, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	codec, err := serializer.ForFormat(o.format)
	if err != nil {
		return nil, err
	}

	// Read-only notebooks cannot damage real data, so they skip the sandbox.
	useTemp := o.forceTemp || (IsDevRun() && o.devSafety && !o.readOnly)
	resolved := ResolveDataDir(dir, useTemp)
	if IsDevRun() && o.store == nil {
		o.logger.Debug("development run", "sandboxed", useTemp, "dir", resolved)
	}

	ctx := context.Background()
	kv, closer, err := openStore(ctx, resolved, codec, o)
	if err != nil {
		return nil, err
	}

	storeOpts := []core.StoreOption{core.WithLogger(o.logger)}
	if o.clock != nil {
		storeOpts = append(storeOpts, core.WithClock(o.clock))
	}
	store := core.NewStore(storeOpts...)

	mirror := core.NewMirror(kv, codec,
		core.WithKey(o.key),
		core.WithMirrorLogger(o.logger),
		core.WithReadOnly(o.readOnly),
	)
	mirror.Load(ctx, store)
	mirror.Attach(ctx, store)

	o.logger.Debug("notebook opened", "adapter", o.adapter, "format", codec.Name(), "count", store.Len())

	return &Notebook{
		store:   store,
		mirror:  mirror,
		kv:      kv,
		codec:   codec,
		adapter: o.adapter,
		logger:  o.logger,
		closer:  closer,
	}, nil
}

func openStore(ctx context.Context, dir string, codec core.Codec, o *options) (core.KeyValue, func() error, error) {
	noop := func() error { return nil }

	if o.store != nil {
		o.adapter = "custom"
		if initializer, ok := o.store.(core.Initializer); ok {
			if err := initializer.Initialize(ctx); err != nil {
				return nil, nil, err
			}
		}
		return o.store, noop, nil
	}

	switch o.adapter {
	case "fs":
		repo := fs.NewRepository(fs.Config{
			Path:      dir,
			MustExist: o.mustExist,
			ReadOnly:  o.readOnly,
			Extension: serializer.Extension(codec),
			Logger:    o.logger,
			Debounce:  o.debounce,
		})
		if err := repo.Initialize(ctx); err != nil {
			return nil, nil, err
		}
		return repo, noop, nil

	case "sqlite":
		repo := sqlite.NewRepository(sqlite.Config{
			Dir:       dir,
			MustExist: o.mustExist,
			ReadOnly:  o.readOnly,
			Logger:    o.logger,
		})
		if err := repo.Initialize(ctx); err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}
