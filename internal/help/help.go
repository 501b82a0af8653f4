// Package help renders the chat help text for each bot command, filtered by
// the roles of the user asking.
package help

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleResults    Role = "RESULTS"
	RoleReset      Role = "RESET"
	RoleFinish     Role = "FINISH"
	RoleConfig     Role = "CONFIG"
	RoleRemoveUser Role = "REMOVEUSER"
)

// Chat commands.
const (
	CommandHelp           = "help"
	CommandPeg            = "peg"
	CommandStatus         = "status"
	CommandKeywords       = "keywords"
	CommandPing           = "ping"
	CommandWelcome        = "welcome"
	CommandRotation       = "rotation"
	CommandResults        = "results"
	CommandReset          = "reset"
	CommandFinish         = "finish"
	CommandNumberConfig   = "numberconfig"
	CommandStringConfig   = "stringconfig"
	CommandRoleConfig     = "roleconfig"
	CommandLocationConfig = "locationconfig"
	CommandUserLocation   = "userlocation"
	CommandLocationWeight = "locationweight"
	CommandRemoveUser     = "removeuser"
)

// Config command actions.
const (
	ActionGet    = "get"
	ActionAdd    = "add"
	ActionSet    = "set"
	ActionDelete = "delete"
)

var stringConfigActions = []string{ActionGet, ActionAdd, ActionDelete}

// ParseRole maps a role name to a Role, ignoring case.
func ParseRole(name string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(name)))
	switch r {
	case RoleAdmin, RoleResults, RoleReset, RoleFinish, RoleConfig, RoleRemoveUser:
		return r, true
	}
	return "", false
}

// Settings holds what the help text depends on besides the caller's roles.
type Settings struct {
	BotName         string
	RequireKeywords bool
}

type topic struct {
	command string
	// perms lists the roles that may see the command; nil means everyone.
	perms []Role
	// full is shown to users holding one of perms (or to everyone).
	full func(bot string, s Settings) string
	// limited, when set, is shown to users without perms instead of the
	// not-found message, and keeps the command in everyone's list.
	limited func(bot string) string
}

var configPerms = []Role{RoleAdmin, RoleConfig}

// topics is in command list order.
var topics = []topic{
	{command: CommandPeg, full: pegHelp},
	{command: CommandStatus, full: statusHelp},
	{command: CommandKeywords, full: keywordsHelp},
	{command: CommandPing, full: pingHelp},
	{command: CommandWelcome, full: welcomeHelp},
	{command: CommandRotation, full: rotationHelp},
	{command: CommandLocationConfig, perms: configPerms, full: locationConfigHelp, limited: locationConfigLimitedHelp},
	{command: CommandUserLocation, perms: configPerms, full: userLocationHelp, limited: userLocationLimitedHelp},
	{command: CommandResults, perms: []Role{RoleAdmin, RoleResults}, full: resultsHelp},
	{command: CommandReset, perms: []Role{RoleAdmin, RoleReset}, full: resetHelp},
	{command: CommandFinish, perms: []Role{RoleAdmin, RoleFinish}, full: finishHelp},
	{command: CommandNumberConfig, perms: configPerms, full: numberConfigHelp},
	{command: CommandStringConfig, perms: configPerms, full: stringConfigHelp},
	{command: CommandRoleConfig, perms: configPerms, full: roleConfigHelp},
	{command: CommandLocationWeight, perms: configPerms, full: locationWeightHelp},
	{command: CommandRemoveUser, perms: []Role{RoleAdmin, RoleRemoveUser}, full: removeUserHelp},
}

var topicIndex = func() map[string]*topic {
	m := make(map[string]*topic, len(topics))
	for i := range topics {
		m[topics[i].command] = &topics[i]
	}
	return m
}()

// Render returns the help response for command as seen by a user with
// roles. An empty command yields the command list; an unknown command, or
// one the user may not use, yields the not-found message.
func Render(command string, roles []Role, s Settings) string {
	command = strings.ToLower(strings.TrimSpace(command))
	if command == "" {
		return commandList(roles, s.BotName)
	}

	t, ok := topicIndex[command]
	if !ok {
		return NotFound(s.BotName)
	}
	if t.perms == nil || hasPermission(roles, t.perms) {
		return t.full(s.BotName, s)
	}
	if t.limited != nil {
		return t.limited(s.BotName)
	}
	return NotFound(s.BotName)
}

// Commands returns the commands visible to a user with roles, in list order.
func Commands(roles []Role) []string {
	var out []string
	for _, t := range topics {
		if t.perms == nil || t.limited != nil || hasPermission(roles, t.perms) {
			out = append(out, t.command)
		}
	}
	return out
}

// NotFound is the reply for unknown or forbidden commands.
func NotFound(bot string) string {
	return fmt.Sprintf("Command not found. To see a full list of commands type `@%s help` or direct message me with `help`.", bot)
}

func commandList(roles []Role, bot string) string {
	var b strings.Builder
	b.WriteString("## What I can do (List of Commands)\n\n")
	for _, c := range Commands(roles) {
		b.WriteString("* " + c + "\n")
	}
	fmt.Fprintf(&b, "\nFor more information on a command type `@%s help command-name` or direct message me with `help command-name`\n", bot)
	b.WriteString("\nI am still being worked on, so more features to come.")
	return b.String()
}

func hasPermission(roles, perms []Role) bool {
	for _, r := range roles {
		for _, p := range perms {
			if r == p {
				return true
			}
		}
	}
	return false
}
