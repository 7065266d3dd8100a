/*
Package slipbox is the state core of a "draw a slip" greeting card: a box of
pre-written sentences drawn at random without repetition, and a single-flight
sequencer that drives the envelope and slip through a timed reveal.

Rendering is left to the host. A renderer subscribes to snapshots and draws
whatever they describe (browser canvas, terminal, agent transcript); user
gestures come back as RequestDraw and RequestReset.

# Concept

A draw request is accepted only when no reveal is running and sentences
remain; otherwise it is silently ignored. An accepted draw pops one sentence
and schedules the reveal on a timeline of (offset, effect) steps:

	t=0       flap opens
	t=500ms   slip emerges
	t=1000ms  envelope fades
	t=1400ms  slip recenters
	t=2500ms  text revealed, box ready again

Drawing again while a slip is shown first hides it and brings the envelope
back closed. Reset returns to the resting state immediately; steps from the
interrupted sequence are cancelled and, should one still fire, ignored.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/slipbox"
	)

	func main() {
		box, err := slipbox.New()
		if err != nil {
			log.Fatal(err)
		}
		defer box.Close()

		updates, stop := box.Subscribe(0)
		defer stop()

		box.RequestDraw(context.Background())
		for snap := range updates {
			if snap.Revealed {
				fmt.Println(snap.ActiveSentence)
				return
			}
		}
	}
*/
package slipbox
