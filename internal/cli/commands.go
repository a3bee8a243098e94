package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/session"
)

type handler func(ctx context.Context, args []string) (session.Reply, error)

// command is one entry of the dispatch table. Usage is shown in help; the
// description comes from the locale under config.TKeyHelpPrefix + name.
type command struct {
	name  string
	usage string
	run   handler
}

func withArgs(f func([]string) (session.Reply, error)) handler {
	return func(_ context.Context, args []string) (session.Reply, error) { return f(args) }
}

func noArgs(f func() (session.Reply, error)) handler {
	return func(context.Context, []string) (session.Reply, error) { return f() }
}

func static(key string) handler {
	return func(context.Context, []string) (session.Reply, error) {
		return session.Reply{Key: key}, nil
	}
}

// commandTable lists the commands in help order. exit and close have no
// handler; the loop stops on them.
func (c *REPL) commandTable() []command {
	s := c.session
	return []command{
		{name: config.CmdHello, usage: config.CmdHello, run: static(config.TKeyHello)},
		{name: config.CmdAdd, usage: "add [username] [phone_number]", run: withArgs(s.AddContact)},
		{name: config.CmdChange, usage: "change [username] [old_phone] [new_phone]", run: withArgs(s.ChangeContact)},
		{name: config.CmdPhone, usage: "phone [username]", run: withArgs(s.ShowPhone)},
		{name: config.CmdRemovePhone, usage: "remove-phone [username] [phone_number]", run: withArgs(s.RemovePhone)},
		{name: config.CmdDelete, usage: "delete [username]", run: withArgs(s.Delete)},
		{name: config.CmdAddBirthday, usage: "add-birthday [username] [birthday]", run: withArgs(s.AddBirthday)},
		{name: config.CmdChangeBirthday, usage: "change-birthday [username] [new_birthday]", run: withArgs(s.ChangeBirthday)},
		{name: config.CmdShowBirthday, usage: "show-birthday [username]", run: withArgs(s.ShowBirthday)},
		{name: config.CmdBirthdays, usage: config.CmdBirthdays, run: noArgs(s.Birthdays)},
		{name: config.CmdAll, usage: config.CmdAll, run: noArgs(s.All)},
		{name: config.CmdImport, usage: "import [file|url]", run: s.Import},
		{name: config.CmdExport, usage: "export [file]", run: withArgs(s.Export)},
		{name: config.CmdCalendar, usage: "calendar [file]", run: s.Calendar},
		{name: config.CmdHelp, usage: config.CmdHelp},
		{name: config.CmdExit, usage: config.CmdExit},
		{name: config.CmdClose, usage: config.CmdClose},
	}
}

// parseInput splits a line into a lower-cased command and its arguments.
// Arguments keep their case since file paths may depend on it.
func parseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// help renders the command list with the usage column padded.
func (c *REPL) help() {
	_, _ = headingColor.Fprintln(c.out, c.renderer.Msg(config.TKeyHelp, nil))
	for _, cmd := range c.commands {
		usage := fmt.Sprintf("%-*s", config.HelpCommandColumnPad, cmd.usage)
		_, _ = fmt.Fprintf(c.out, "    * %s - %s\n",
			usageColor.Sprint(usage),
			c.renderer.Msg(config.TKeyHelpPrefix+cmd.name, nil),
		)
	}
}
