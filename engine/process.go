package engine

import (
	"fmt"
	"hasami/communication"
	"hasami/player"
	"hasami/searcher/agent"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// StartProcess starts a player program that speaks the protocol on its
// standard input and output. Its standard error is passed through.
func StartProcess(path string, args ...string) (communication.Communicator, error) {
	cmd := exec.Command(path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", path, err)
	}
	log.Debug().Msgf("started %s (pid %d)", path, cmd.Process.Pid)

	return communication.NewStreamCommunicator(stdout, stdin, func() error {
		stdin.Close()
		cmd.Process.Kill()
		// Killed players exit with an error
		cmd.Wait()
		return nil
	}), nil
}

// PipePlayer runs a player session for agent a in-process and returns the
// arena's side of the session.
func PipePlayer(a agent.Agent) communication.Communicator {
	arenaSide, playerSide := communication.NewPipe()
	go func() {
		defer playerSide.Close()
		if _, err := player.NewPlayer(a, playerSide).Run(); err != nil {
			log.Debug().Msgf("%s left: %v", a.Name(), err)
		}
	}()
	return arenaSide
}
