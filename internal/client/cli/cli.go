package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	httpClient "github.com/iudanet/tasksync/internal/client/api"
	"github.com/iudanet/tasksync/internal/client/conflicts"
	"github.com/iudanet/tasksync/internal/client/storage/boltdb"
	"github.com/iudanet/tasksync/internal/client/syncer"
	"github.com/iudanet/tasksync/internal/client/tasks"
)

// Cli wires the client services behind the command line commands
type Cli struct {
	apiClient   httpClient.ClientAPI
	store       *boltdb.Storage
	tasksSvc    tasks.Service
	syncService syncer.Service
	surface     *conflicts.Surface
	serverURL   string
	logger      *slog.Logger
}

// New creates a new CLI instance
func New(
	apiClient httpClient.ClientAPI,
	store *boltdb.Storage,
	tasksSvc tasks.Service,
	syncService syncer.Service,
	surface *conflicts.Surface,
	serverURL string,
	logger *slog.Logger,
) *Cli {
	return &Cli{
		apiClient:   apiClient,
		store:       store,
		tasksSvc:    tasksSvc,
		syncService: syncService,
		surface:     surface,
		serverURL:   serverURL,
		logger:      logger,
	}
}

func PrintUsage() {
	fmt.Println("TaskSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tasksync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH      Path to local database (default: tasksync-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                     Register new user")
	fmt.Println("  login                        Login to server")
	fmt.Println("  logout                       Logout from server")
	fmt.Println("  status                       Show sync status and pending changes")
	fmt.Println("  add <task|project>           Add a new task or project")
	fmt.Println("  list <tasks|projects|all>    List cached records")
	fmt.Println("  get <id>                     Show full record details")
	fmt.Println("  update <id> <field=value>    Update fields of a record")
	fmt.Println("  delete <id>                  Delete a record")
	fmt.Println("  sync                         Drain the mutation queue to the server")
	fmt.Println("  conflicts                    List unresolved conflicts")
	fmt.Println("  resolve <id> <local|remote>  Resolve a conflict")
	fmt.Println("  watch                        Follow realtime updates (Ctrl+C to stop)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  tasksync register")
	fmt.Println("  tasksync login")
	fmt.Println("  tasksync add task")
	fmt.Println("  tasksync list tasks")
	fmt.Println("  tasksync update b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 status=done")
	fmt.Println("  tasksync sync")
	fmt.Println("  tasksync resolve 3f8c1d2e-5a6b-4c7d-8e9f-0a1b2c3d4e5f local")
	fmt.Println("  tasksync --server https://example.com watch")
}

// readInput читает строку из stdin
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPassword читает пароль без отображения на экране
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Переход на новую строку после ввода пароля
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}
