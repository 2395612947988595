package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type PingCmd struct {
	Wait    bool          `help:"Keep retrying until the server responds" default:"false"`
	Timeout time.Duration `help:"Give up waiting after this long" default:"1m"`
}

func (p *PingCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	if !p.Wait {
		if err := app.client.Ping(ctx); err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		fmt.Println("Server is reachable")
		return nil
	}

	// The adapter never retries, so the wait policy lives here.
	operation := func() (struct{}, error) {
		return struct{}{}, app.client.Ping(ctx)
	}

	_, err = backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(p.Timeout),
	)
	if err != nil {
		return fmt.Errorf("server unreachable after %s: %w", p.Timeout, err)
	}

	fmt.Println("Server is reachable")
	return nil
}
