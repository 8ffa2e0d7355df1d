package rickmorty

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GetCharacters fetches characters by id concurrently. The result has the same
// order as ids; the first failure cancels the remaining lookups.
func (c *Client) GetCharacters(ctx context.Context, ids []int) ([]Character, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	// Each goroutine writes only its own slot
	results := make([]Character, len(ids))

	for i, id := range ids {
		g.Go(func() error {
			character, err := c.GetCharacter(ctx, id)
			if err != nil {
				return err
			}
			results[i] = *character
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(results)).Msg("Retrieved characters by id")
	return results, nil
}
