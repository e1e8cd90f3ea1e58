package driver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RunScript executes a line-oriented command script against the driver's
// state file. Blank lines and '#' comments are skipped; any failure is
// returned with its 1-based line number.
//
// Commands:
//
//	new [players [seed]]
//	draw <player>
//	stay <player>
//	state
func (d *Driver) RunScript(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fmt.Fprintf(d.out, "Executing: %s\n", line)

		if err := d.runLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

func (d *Driver) runLine(line string) error {
	parts := strings.Fields(line)

	switch parts[0] {
	case "new":
		players := 2
		seed := uint64(42)
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				return fmt.Errorf("invalid player count %q", parts[1])
			}
			players = n
		}
		if len(parts) > 2 {
			s, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed %q", parts[2])
			}
			seed = s
		}
		return d.NewGame(players, seed)

	case "draw":
		player, err := playerArg(parts)
		if err != nil {
			return err
		}
		return d.Draw(player)

	case "stay":
		player, err := playerArg(parts)
		if err != nil {
			return err
		}
		return d.Stay(player)

	case "state":
		return d.State()

	default:
		return fmt.Errorf("unknown command %q", parts[0])
	}
}

func playerArg(parts []string) (int, error) {
	if len(parts) < 2 {
		return 0, fmt.Errorf("missing player argument")
	}
	player, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid player ID %q", parts[1])
	}
	return player, nil
}
