// Package rickmorty provides a client for the public Rick and Morty REST API.
//
// The API serves characters as paginated envelopes. Each page carries the URL of
// the next page in info.next, which this package treats as an opaque cursor.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := rickmorty.NewClient(
//		"https://rickandmortyapi.com/api",
//		logger,
//		rickmorty.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.GetCharacterPage(ctx, 1)
//	for page.HasNext() {
//		page, err = client.GetPageAt(ctx, page.Next)
//		...
//	}
//
// # Error Handling
//
// Failures are reported with three error types:
//
//   - TransportError: the request never produced a response (network, timeout, cancel)
//   - APIError: the service answered with a non-2xx status
//   - EmptyResultError: a name search matched nothing
//
// Use errors.Is with ErrNotFound or ErrEmptyResult, or errors.As for the typed errors:
//
//	var apiErr *rickmorty.APIError
//	if errors.As(err, &apiErr) && apiErr.IsServerError() {
//		// try again later
//	}
package rickmorty
