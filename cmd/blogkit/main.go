// Command blogkit formats blog content and serves it over HTTP.
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/blogkit/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cli.Execute(context.Background(), version))
}
