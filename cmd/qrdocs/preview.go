package main

import (
	"fmt"

	qrdocs "github.com/jero237/qrticket-docs"
)

// Run executes the preview command: it lists the URLs a --sitemap crawl
// would seed, without starting a browser.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	urls, err := deps.Seeder.DiscoverURLs(deps.Ctx, c.URL, excludeFilter(c.Exclude))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qrdocs.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No sitemap URLs found.")
		return nil
	}
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
