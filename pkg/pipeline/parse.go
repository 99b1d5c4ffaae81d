package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/observability"
	"github.com/matzehuels/shelfview/pkg/scene"
)

// LoadScene returns opts.Scene or reads opts.ScenePath.
func LoadScene(ctx context.Context, opts Options) (*scene.Scene, error) {
	start := time.Now()
	sc, err := loadScene(opts)

	name, items := opts.ScenePath, 0
	if sc != nil {
		name, items = sc.Name, sc.ItemCount()
	}
	observability.Pipeline().OnSceneLoad(ctx, name, items, time.Since(start), err)
	return sc, err
}

func loadScene(opts Options) (*scene.Scene, error) {
	if opts.Scene != nil {
		if err := opts.Scene.Validate(); err != nil {
			return nil, err
		}
		return opts.Scene, nil
	}
	if err := errors.ValidatePath(opts.ScenePath); err != nil {
		return nil, err
	}
	return scene.Load(opts.ScenePath)
}
