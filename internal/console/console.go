// Package console drives a ledger from line-oriented text commands, one
// command per line. Every command prints exactly one "ok ..." or
// "error: ..." line; domain errors never stop the session.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sheikh-saqib/banking-ledger/internal/ledger"
	"github.com/sheikh-saqib/banking-ledger/internal/pkg/logger"
)

var errUsage = errors.New("usage")

const help = `commands:
  user add <id> <credential> [name...]
  user del <id>
  user show <id>
  account add <user-id>
  account del <account-id> [user-id]
  deposit <account-id> <amount>
  withdraw <account-id> <amount>
  transfer <from-account-id> <to-account-id> <amount>
  balance <account-id>
  accounts <user-id>
  history <account-id>
  help
  quit`

type Console struct {
	ledger *ledger.Ledger
	log    *logger.Logger
}

func New(l *ledger.Ledger, log *logger.Logger) *Console {
	return &Console{ledger: l, log: log}
}

// Run executes commands from r until EOF or quit and writes results to w.
func (c *Console) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if _, err := fmt.Fprintln(w, c.Exec(line)); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return scanner.Err()
}

// Exec runs a single command and returns its result line.
func (c *Console) Exec(line string) string {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "error: empty command"
	}

	out, err := c.dispatch(args)
	if errors.Is(err, errUsage) {
		return "error: usage: " + usageOf(args[0])
	}
	if err != nil {
		c.log.Debug("command failed", "command", args[0], "error", err.Error())
		return "error: " + err.Error()
	}
	return "ok " + out
}

func (c *Console) dispatch(args []string) (string, error) {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "user":
		return c.user(rest)
	case "account":
		return c.account(rest)
	case "deposit", "withdraw":
		if len(rest) != 2 {
			return "", errUsage
		}
		amount, err := ledger.ParseAmount(rest[1])
		if err != nil {
			return "", err
		}
		apply := c.ledger.Deposit
		verb := "deposited"
		if cmd == "withdraw" {
			apply = c.ledger.Withdraw
			verb = "withdrew"
		}
		r, err := apply(rest[0], amount)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s account=%s balance=%s", verb, r.Amount, r.AccountID, r.Balance), nil
	case "transfer":
		if len(rest) != 3 {
			return "", errUsage
		}
		amount, err := ledger.ParseAmount(rest[2])
		if err != nil {
			return "", err
		}
		r, err := c.ledger.Transfer(rest[0], rest[1], amount)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("transferred %s from=%s to=%s from_balance=%s to_balance=%s",
			r.Amount, r.FromAccountID, r.ToAccountID, r.FromBalance, r.ToBalance), nil
	case "balance":
		if len(rest) != 1 {
			return "", errUsage
		}
		b, err := c.ledger.Balance(rest[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("account=%s balance=%s", rest[0], b), nil
	case "accounts":
		if len(rest) != 1 {
			return "", errUsage
		}
		ids, err := c.ledger.AccountsOf(rest[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("user=%s accounts=[%s]", rest[0], strings.Join(ids, ",")), nil
	case "history":
		if len(rest) != 1 {
			return "", errUsage
		}
		entries, err := c.ledger.Entries(rest[0])
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			parts = append(parts, fmt.Sprintf("%s:%s->%s", e.Kind, e.Amount, e.BalanceAfter))
		}
		return fmt.Sprintf("account=%s entries=[%s]", rest[0], strings.Join(parts, " ")), nil
	case "help":
		return "\n" + help, nil
	default:
		return "", fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (c *Console) user(args []string) (string, error) {
	if len(args) < 2 {
		return "", errUsage
	}
	switch args[0] {
	case "add":
		if len(args) < 3 {
			return "", errUsage
		}
		u, err := c.ledger.CreateUser(args[1], strings.Join(args[3:], " "), args[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("created user=%s name=%q", u.ID, u.DisplayName), nil
	case "del":
		if len(args) != 2 {
			return "", errUsage
		}
		res, err := c.ledger.DeleteUser(args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("deleted user=%s accounts=[%s]", res.UserID, strings.Join(res.AccountIDs, ",")), nil
	case "show":
		if len(args) != 2 {
			return "", errUsage
		}
		u, err := c.ledger.User(args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("user=%s name=%q accounts=[%s]", u.ID, u.DisplayName, strings.Join(u.AccountIDs, ",")), nil
	default:
		return "", errUsage
	}
}

func (c *Console) account(args []string) (string, error) {
	if len(args) < 2 {
		return "", errUsage
	}
	switch args[0] {
	case "add":
		if len(args) != 2 {
			return "", errUsage
		}
		a, err := c.ledger.CreateAccount(args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("created account=%s user=%s balance=%s", a.ID, a.OwnerID, a.Balance), nil
	case "del":
		if len(args) > 3 {
			return "", errUsage
		}
		var requester string
		if len(args) == 3 {
			requester = args[2]
		}
		res, err := c.ledger.DeleteAccount(args[1], requester)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("deleted account=%s user=%s", res.AccountID, res.OwnerID), nil
	default:
		return "", errUsage
	}
}

func usageOf(cmd string) string {
	var lines []string
	for _, l := range strings.Split(help, "\n")[1:] {
		l = strings.TrimSpace(l)
		if l == cmd || strings.HasPrefix(l, cmd+" ") {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return "help"
	}
	return strings.Join(lines, " | ")
}
