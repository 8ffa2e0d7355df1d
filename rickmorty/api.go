package rickmorty

import (
	"context"
)

// API defines the interface for the character endpoints
type API interface {
	// Ping verifies the client can reach the API
	Ping(ctx context.Context) (map[string]string, error)

	// GetCharacter retrieves a single character by id
	GetCharacter(ctx context.Context, id int) (*Character, error)

	// GetCharacters retrieves several characters, preserving input order
	GetCharacters(ctx context.Context, ids []int) ([]Character, error)

	PageFetcher
}

// PageFetcher provides the paginated reads a list controller needs
type PageFetcher interface {
	// FirstPage fetches page 1 of the unfiltered listing
	FirstPage(ctx context.Context) (*Page, error)

	// NextPage fetches the page a previous response pointed at
	NextPage(ctx context.Context, cursor string) (*Page, error)

	// SearchByName fetches the first page of characters whose name contains query
	SearchByName(ctx context.Context, query string) (*Page, error)
}
