/*
Package runner implements the terminal front-end of a slipbox.

It bridges a Box and a line-oriented terminal: every line read from the
input is a command, and every snapshot the box publishes is handed to a
View. Commands and snapshots are handled on one goroutine, so views never
need locking.

# Commands

  - "" or "draw": draw a slip
  - "reset": put the envelope back at rest
  - "restart": put every slip back and reset
  - "state": print the current counters
  - "help": list the commands
  - "quit" or "exit": stop the runner

# Usage

	r := runner.NewRunner(box,
		runner.WithRenderer(tui.NewRenderer()),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
