package core

import "sort"

// DrawCommand is a deferred drawing operation.
type DrawCommand struct {
	Z   int
	Run func()
}

// DrawBuffer collects draw commands during a frame and executes them in
// ascending z order. Commands with equal z keep their submission order.
type DrawBuffer struct {
	commands []DrawCommand
}

// Push defers fn to the next Flush at the given z level.
func (b *DrawBuffer) Push(z int, fn func()) {
	b.commands = append(b.commands, DrawCommand{Z: z, Run: fn})
}

// Len returns the number of pending commands.
func (b *DrawBuffer) Len() int {
	return len(b.commands)
}

// Flush executes all pending commands sorted by z and empties the buffer.
func (b *DrawBuffer) Flush() {
	sort.SliceStable(b.commands, func(i, j int) bool {
		return b.commands[i].Z < b.commands[j].Z
	})
	for _, cmd := range b.commands {
		cmd.Run()
	}
	b.Reset()
}

// Reset drops all pending commands without executing them.
func (b *DrawBuffer) Reset() {
	clear(b.commands)
	b.commands = b.commands[:0]
}
