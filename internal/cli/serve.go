package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hoangnm/skill-advisor/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the 'serve' command for running the stdio server.
func NewServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the advisor as a stdio JSON-lines server",
		Long: `Start a server reading one JSON request per line on stdin and writing
one JSON response per line on stdout.

Operations:
  • recommend - run the recommendation pipeline for a prompt
  • feedback  - attach an outcome to an invocation
  • stats     - recent success rate and top skills
  • skills    - list the candidate skill set

Host processes embed this to get recommendations without linking the
library.`,
		Example: `  skill-advisor serve
  echo '{"op":"recommend","prompt":"fix the login bug"}' | skill-advisor serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.skill-advisor.json)")

	return cmd
}

// runServe starts the stdio server with signal handling. The server exits
// when stdin closes or a termination signal arrives.
func runServe(configPath string) error {
	rt, err := openRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	srv := server.NewServer(rt.advisor)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run(os.Stdin, os.Stdout)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down", sig)
		return nil
	case err := <-errChan:
		return err
	}
}
