package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/brainboard/internal/cli"
	"github.com/matzehuels/brainboard/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	err := root.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if stderrors.Is(err, context.Canceled) {
		os.Exit(130) // Standard shell convention for SIGINT
	}
	code := exitCode(err)
	msg := err.Error()
	if code != 1 {
		msg = errors.UserMessage(err)
	}
	fmt.Fprintln(os.Stderr, "Error:", msg)
	os.Exit(code)
}

// exitCode is 2 for bad input, 3 for a missing board or layer and 1
// otherwise.
func exitCode(err error) int {
	switch errors.KindOf(errors.GetCode(err)) {
	case errors.KindClient:
		return 2
	case errors.KindNotFound:
		return 3
	}
	return 1
}
