// Package cli is the interactive front end: it reads commands, dispatches them
// to the session and prints localized, colored replies.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/session"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	headingColor = color.New(color.FgYellow)
	usageColor   = color.New(color.FgGreen)
)

// dataKeys are replies that carry data rather than a confirmation; they are
// printed without color.
var dataKeys = map[string]bool{
	config.TKeyContactLine:     true,
	config.TKeyContactNoPhones: true,
	config.TKeyBirthdayShow:    true,
	config.TKeyBirthdaysNone:   true,
}

// REPL runs the read-eval-print loop over one session.
type REPL struct {
	session  *session.Session
	renderer *Renderer
	in       io.Reader
	out      io.Writer
	commands []command
	byName   map[string]command
}

// NewREPL wires a loop reading from in and writing to out.
func NewREPL(s *session.Session, r *Renderer, in io.Reader, out io.Writer) *REPL {
	c := &REPL{
		session:  s,
		renderer: r,
		in:       in,
		out:      out,
	}
	c.commands = c.commandTable()
	c.byName = make(map[string]command, len(c.commands))
	for _, cmd := range c.commands {
		c.byName[cmd.name] = cmd
	}
	return c
}

// Run processes commands until exit/close, end of input or cancellation of
// ctx. The book is saved in every case; the returned error is the save or read
// failure, if any.
func (c *REPL) Run(ctx context.Context) error {
	_, _ = headingColor.Fprintln(c.out, c.renderer.Msg(config.TKeyWelcome, nil))

	lines := make(chan string)
	readErr := make(chan error, config.ChannelBufferSize)
	done := make(chan struct{})
	defer close(done)
	go c.readLines(lines, readErr, done)

	for {
		_, _ = fmt.Fprint(c.out, c.renderer.Msg(config.TKeyPrompt, nil))

		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompCLI)
			_, _ = fmt.Fprintln(c.out)
			return c.save()

		case err := <-readErr:
			saveErr := c.save()
			if err != nil {
				return errors.Join(fmt.Errorf("%s: %w", config.ErrInputRead, err), saveErr)
			}
			return saveErr

		case line := <-lines:
			if c.execute(ctx, line) {
				if err := c.save(); err != nil {
					return err
				}
				_, _ = headingColor.Fprintln(c.out, c.renderer.Msg(config.TKeyGoodbye, nil))
				return nil
			}
		}
	}
}

// readLines feeds stdin to the loop. It reports nil on EOF.
func (c *REPL) readLines(lines chan<- string, readErr chan<- error, done <-chan struct{}) {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	readErr <- scanner.Err()
}

// execute runs one input line and reports whether the loop must stop.
func (c *REPL) execute(ctx context.Context, line string) bool {
	name, args := parseInput(line)
	if name == "" {
		c.printError(&addressbook.ArgumentCountError{Want: 1})
		return false
	}

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyCommand, name,
		config.LogKeyArgs, len(args),
	)

	switch name {
	case config.CmdExit, config.CmdClose:
		return true
	case config.CmdHelp:
		c.help()
		return false
	}

	cmd, ok := c.byName[name]
	if !ok || cmd.run == nil {
		_, _ = errorColor.Fprintln(c.out, c.renderer.Msg(config.TKeyErrUnknownCmd, nil))
		return false
	}

	reply, err := cmd.run(ctx, args)
	if err != nil {
		slog.Debug(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyCommand, name,
			config.LogKeyError, err,
		)
		c.printError(err)
		return false
	}
	c.printReply(reply)
	return false
}

func (c *REPL) printReply(reply session.Reply) {
	if reply.Key != "" {
		text := c.renderer.Msg(reply.Key, reply.Data)
		switch {
		case len(reply.Items) > 0 || reply.Key == config.TKeyHello:
			_, _ = headingColor.Fprintln(c.out, text)
		case dataKeys[reply.Key]:
			_, _ = fmt.Fprintln(c.out, text)
		default:
			_, _ = successColor.Fprintln(c.out, text)
		}
	}

	items := make([]string, 0, len(reply.Items))
	for _, item := range reply.Items {
		items = append(items, c.renderer.Msg(item.Key, item.Data))
	}
	if len(items) > 0 {
		_, _ = fmt.Fprintln(c.out, strings.Join(items, "\n"))
	}
}

func (c *REPL) printError(err error) {
	_, _ = errorColor.Fprintln(c.out, c.renderer.Error(err))
}

func (c *REPL) save() error {
	if err := c.session.Save(); err != nil {
		slog.Error(config.ErrSaveFailed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyError, err,
		)
		c.printError(err)
		return err
	}
	return nil
}
