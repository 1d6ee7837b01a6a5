package app

import (
	"context"
	"log"

	"github.com/five82/ducktail/internal/engine"
)

// StartLoop runs loop on a background goroutine until ctx is cancelled. It
// returns immediately; the loop's Done channel reports when it has stopped.
func StartLoop(ctx context.Context, loop *engine.Loop) {
	go func() {
		if err := loop.Run(ctx); err != nil {
			log.Printf("poll loop stopped: %v", err)
		}
	}()
}
