package cmd

import (
	"fmt"
	"os"

	"github.com/animecritique/critique/backend"
	"github.com/animecritique/critique/jikan"
	"github.com/animecritique/critique/log"
	"github.com/animecritique/critique/outcome"
	"github.com/animecritique/critique/render"
	"github.com/animecritique/critique/spin"
	"github.com/animecritique/critique/util"
)

// fetch runs one request behind the spinner and exits on anything but ok.
func fetch[T any](title string, request func() outcome.Outcome[T]) T {
	o := spin.While(title, request)

	value, ok := o.Get()
	if !ok {
		report(o)
		os.Exit(exitCode(o.Err()))
	}
	return value
}

// exitCode is 2 when the service declined, 3 when it could not be reached
// and 1 for anything else.
func exitCode(err error) int {
	switch {
	case outcome.IsDecline(err):
		return 2
	case outcome.IsTransport(err):
		return 3
	default:
		return 1
	}
}

// report prints a decline or a failure.
func report[T any](o outcome.Outcome[T]) {
	o.Match(
		nil,
		func(d *outcome.Decline) {
			log.Warn(d)
			_, _ = fmt.Fprintln(os.Stderr, render.Decline(d))
		},
		func(t *outcome.TransportError) {
			log.Error(t)
			_, _ = fmt.Fprintln(os.Stderr, render.Failure(t))
		},
	)
}

func backendClient() *backend.Client {
	c, err := backend.Default()
	handleErr(err)
	return c
}

func jikanClient() *jikan.Client {
	c, err := jikan.Default()
	handleErr(err)
	return c
}

func width() int {
	return util.Min(util.TerminalWidth(80), 100)
}
